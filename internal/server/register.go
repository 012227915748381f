package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// HTTPVerb identifies the HTTP method a REST handler is mounted under.
type HTTPVerb int

const (
	Unknown HTTPVerb = iota
	GET
	GET_ONE
	DELETE
	POST
	PUT
	PATCH
)

// RestMethod pairs an HTTP verb and path with its handler.
type RestMethod struct {
	Verb    HTTPVerb
	Path    string
	Handler gin.HandlerFunc
}

// register adds a REST method to the route table.
func (s *Server) register(m RestMethod) error {
	key := fmt.Sprintf("%d_%s", m.Verb, m.Path)
	if _, exists := s.methods[key]; exists {
		return fmt.Errorf("can't add %s, an existing handler in REST method map exists", key)
	}
	s.methods[key] = m
	return nil
}

// registerMethod is a helper function for register.
func (s *Server) registerMethod(verb HTTPVerb, path string, h gin.HandlerFunc) error {
	return s.register(RestMethod{
		Verb:    verb,
		Path:    path,
		Handler: h,
	})
}

// restMethods returns the registered REST methods.
func (s *Server) restMethods() []RestMethod {
	methods := make([]RestMethod, 0, len(s.methods))
	for _, m := range s.methods {
		methods = append(methods, m)
	}
	return methods
}
