package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/docstore/internal/document"
	"github.com/gogotex/docstore/internal/document/repository"
	"github.com/gogotex/docstore/internal/document/service"
)

func RegisterDocumentRoutes(r gin.IRouter, svc service.Service) {
	r.POST("/api/documents", func(c *gin.Context) {
		doc, ok := decodeDocument(c)
		if !ok {
			return
		}
		save(c, svc, doc)
	})

	// upsert under the path id; a body id is ignored
	r.PUT("/api/documents/:id", func(c *gin.Context) {
		doc, ok := decodeDocument(c)
		if !ok {
			return
		}
		if doc != nil {
			doc.ID = c.Param("id")
		}
		save(c, svc, doc)
	})

	r.GET("/api/documents/:id", func(c *gin.Context) {
		d, err := svc.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if d == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, d)
	})

	r.GET("/api/documents", func(c *gin.Context) {
		req, err := searchRequestFromQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		search(c, svc, req)
	})

	r.POST("/api/documents/search", func(c *gin.Context) {
		var req document.SearchRequest
		// an empty body searches without constraints
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		search(c, svc, req)
	})
}

// decodeDocument reads the request body. A JSON null yields a nil document,
// which the store rejects as invalid. ShouldBindJSON is not used because
// gin's validator panics on a nil *Document.
func decodeDocument(c *gin.Context) (*document.Document, bool) {
	var doc *document.Document
	if err := json.NewDecoder(c.Request.Body).Decode(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return doc, true
}

func save(c *gin.Context, svc service.Service, doc *document.Document) {
	saved, err := svc.Save(c.Request.Context(), doc)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrInvalidDocument) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func search(c *gin.Context, svc service.Service, req document.SearchRequest) {
	list, err := svc.Search(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func searchRequestFromQuery(c *gin.Context) (document.SearchRequest, error) {
	req := document.SearchRequest{
		TitlePrefixes:    c.QueryArray("titlePrefix"),
		ContainsContents: c.QueryArray("content"),
		AuthorIDs:        c.QueryArray("authorId"),
	}
	var err error
	if req.CreatedFrom, err = queryTime(c, "createdFrom"); err != nil {
		return req, err
	}
	if req.CreatedTo, err = queryTime(c, "createdTo"); err != nil {
		return req, err
	}
	return req, nil
}

func queryTime(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &t, nil
}
