// Package fakeapi runs an in-process imitation of the tax REST API for tests.
package fakeapi

import (
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Recorded is one request as the server saw it.
type Recorded struct {
	Method        string
	Path          string
	RawQuery      string
	Header        http.Header
	Body          string
	ContentLength int64
}

// Server is a running fake API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

// New starts a plain HTTP fake accepting account:license as Basic credentials.
func New(account, license string) *Server {
	s := &Server{}
	s.Server = httptest.NewServer(s.engine(account, license))
	return s
}

// NewTLS starts the fake behind a self-signed certificate.
func NewTLS(account, license string) *Server {
	s := &Server{}
	s.Server = httptest.NewTLSServer(s.engine(account, license))
	return s
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// Last returns the most recent request.
func (s *Server) Last() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// WriteCAFile writes the server certificate as a PEM bundle into dir and
// returns its path. Only meaningful for NewTLS servers.
func (s *Server) WriteCAFile(dir string) (string, error) {
	path := filepath.Join(dir, "fakeapi-ca.pem")
	block := &pem.Block{Type: "CERTIFICATE", Bytes: s.Certificate().Raw}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Server) engine(account, license string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.record)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ResultCode": "Error", "Messages": []gin.H{{"Summary": "not found"}}})
	})

	api := r.Group("/1.0", gin.BasicAuth(gin.Accounts{account: license}))
	api.GET("/tax/:coordinates/get", estimateTax)
	api.POST("/tax/get", getTax)
	api.POST("/tax/cancel", cancelTax)
	api.GET("/address/validate", validateAddress)
	api.GET("/empty", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.POST("/empty", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/nocontent", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	api.GET("/error", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, `{"ResultCode":"Error"}`)
	})

	return r
}

func (s *Server) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(strings.NewReader(string(body)))

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		RawQuery:      c.Request.URL.RawQuery,
		Header:        c.Request.Header.Clone(),
		Body:          string(body),
		ContentLength: c.Request.ContentLength,
	})
	s.mu.Unlock()

	c.Next()
}

const rate = 0.095

func estimateTax(c *gin.Context) {
	lat, long, ok := strings.Cut(c.Param("coordinates"), ",")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ResultCode": "Error", "Messages": []gin.H{{"Summary": "invalid coordinates"}}})
		return
	}
	amount, _ := strconv.ParseFloat(c.DefaultQuery("saleamount", "0"), 64)
	c.JSON(http.StatusOK, gin.H{
		"ResultCode": "Success",
		"Rate":       rate,
		"Tax":        amount * rate,
		"Latitude":   lat,
		"Longitude":  long,
	})
}

type taxRequest struct {
	DocCode string  `json:"DocCode"`
	Amount  float64 `json:"amount"`
}

func getTax(c *gin.Context) {
	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ResultCode": "Error", "Messages": []gin.H{{"Summary": err.Error()}}})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ResultCode": "Success",
		"DocCode":    req.DocCode,
		"TotalTax":   req.Amount * rate,
	})
}

func cancelTax(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"CancelTaxResult": gin.H{"ResultCode": "Success"}})
}

func validateAddress(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ResultCode": "Success",
		"Address":    gin.H{"Line1": c.Query("Line1"), "PostalCode": c.Query("PostalCode")},
	})
}
