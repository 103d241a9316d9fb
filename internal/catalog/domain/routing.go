package domain

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const FallbackRoute = "/category/phones"

type Route struct {
	Keyword string `yaml:"keyword"`
	Path    string `yaml:"path"`
}

// DefaultRoutes is checked top to bottom. A subcategory naming two brands
// resolves to whichever appears first here.
var DefaultRoutes = []Route{
	{Keyword: "iphone", Path: "/brand/apple"},
	{Keyword: "apple", Path: "/brand/apple"},
	{Keyword: "samsung", Path: "/brand/samsung"},
	{Keyword: "infinix", Path: "/brand/infinix"},
	{Keyword: "tecno", Path: "/brand/tecno"},
	{Keyword: "xiaomi", Path: "/brand/xiaomi"},
	{Keyword: "redmi", Path: "/brand/xiaomi"},
	{Keyword: "poco", Path: "/brand/xiaomi"},
	{Keyword: "oppo", Path: "/brand/oppo"},
	{Keyword: "vivo", Path: "/brand/vivo"},
	{Keyword: "realme", Path: "/brand/realme"},
	{Keyword: "oneplus", Path: "/brand/oneplus"},
	{Keyword: "pixel", Path: "/brand/google"},
	{Keyword: "google", Path: "/brand/google"},
	{Keyword: "honor", Path: "/brand/honor"},
	{Keyword: "huawei", Path: "/brand/huawei"},
	{Keyword: "motorola", Path: "/brand/motorola"},
}

// Router maps a free-text subcategory to a brand collection page.
type Router struct {
	routes   []Route
	fallback string
}

func NewRouter(routes []Route, fallback string) *Router {
	if fallback == "" {
		fallback = FallbackRoute
	}
	rs := make([]Route, 0, len(routes))
	for _, r := range routes {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" || r.Path == "" {
			continue
		}
		rs = append(rs, Route{Keyword: kw, Path: r.Path})
	}
	return &Router{routes: rs, fallback: fallback}
}

func DefaultRouter() *Router {
	return NewRouter(DefaultRoutes, FallbackRoute)
}

// Resolve returns the first route whose keyword is contained in the
// lowercased subcategory, or the fallback.
func (r *Router) Resolve(subcategory string) string {
	s := strings.ToLower(subcategory)
	if strings.TrimSpace(s) == "" {
		return r.fallback
	}
	for _, rt := range r.routes {
		if strings.Contains(s, rt.Keyword) {
			return rt.Path
		}
	}
	return r.fallback
}

func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

type routeFile struct {
	Fallback string  `yaml:"fallback"`
	Routes   []Route `yaml:"routes"`
}

// LoadRouter reads a route table such as:
//
//	fallback: /category/phones
//	routes:
//	  - keyword: iphone
//	    path: /brand/apple
func LoadRouter(r io.Reader) (*Router, error) {
	var f routeFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	router := NewRouter(f.Routes, f.Fallback)
	if len(router.routes) == 0 {
		return nil, errors.New("decode routes: no usable routes")
	}
	return router, nil
}
