package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-posting-index/index"
	indexerrors "github.com/gcbaptista/go-posting-index/internal/errors"
	"github.com/gcbaptista/go-posting-index/services"
)

// API holds dependencies for API handlers, primarily the index manager.
type API struct {
	engine services.IndexManager
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.IndexManager) *API {
	return &API{engine: engine}
}

// SetupRoutes defines all the API routes for the posting index service.
func SetupRoutes(router *gin.Engine, engine services.IndexManager) {
	apiHandler := NewAPI(engine)

	router.Use(RequestIDMiddleware())

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Index management routes
	indexRoutes := router.Group("/indexes")
	{
		indexRoutes.POST("", apiHandler.CreateIndexHandler)              // Create a new index
		indexRoutes.GET("", apiHandler.ListIndexesHandler)               // List all indexes
		indexRoutes.GET("/:indexName", apiHandler.GetIndexHandler)       // Get index settings
		indexRoutes.DELETE("/:indexName", apiHandler.DeleteIndexHandler) // Delete an index

		// Term routes per index
		termRoutes := indexRoutes.Group("/:indexName/terms")
		{
			termRoutes.PUT("", apiHandler.AddTermsHandler)           // Add term/doc-id pairs
			termRoutes.GET("/:term", apiHandler.GetDocVectorHandler) // Get a term's posting list
		}
	}
}

// CreateIndexRequest defines the structure for index creation.
type CreateIndexRequest struct {
	Name string `json:"name"`
}

// CreateIndexHandler handles the request to create a new index.
func (api *API) CreateIndexHandler(c *gin.Context) {
	var req CreateIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateIndexName(req.Name); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	if err := api.engine.CreateIndex(req.Name); err != nil {
		if errors.Is(err, indexerrors.ErrIndexAlreadyExists) {
			SendIndexExistsError(c, req.Name)
			return
		}
		SendInternalError(c, "index creation", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Index '" + req.Name + "' created successfully"})
}

// ListIndexesHandler lists all available indexes.
func (api *API) ListIndexesHandler(c *gin.Context) {
	names := api.engine.ListIndexes()
	c.JSON(http.StatusOK, gin.H{"indexes": names, "count": len(names)})
}

// GetIndexHandler retrieves details about a specific index (its settings).
func (api *API) GetIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}
	c.JSON(http.StatusOK, indexAccessor.Settings())
}

// DeleteIndexHandler handles deleting an index.
func (api *API) DeleteIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")

	if err := api.engine.DeleteIndex(indexName); err != nil {
		if errors.Is(err, indexerrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return
		}
		SendInternalError(c, "index deletion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Index '" + indexName + "' deleted successfully"})
}

// AddTermRequest is a single term/doc-id pair to index.
type AddTermRequest struct {
	Term  string `json:"term"`
	DocID uint64 `json:"doc_id"`
}

// AddTermsHandler handles adding term/doc-id pairs to an index. The body may
// be a single pair or an array of pairs.
func (api *API) AddTermsHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	// Decode with UseNumber so doc ids above 2^53 keep every bit; binding
	// through float64 would silently round them.
	var rawData interface{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&rawData); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	var pairs []AddTermRequest
	switch data := rawData.(type) {
	case []interface{}:
		pairs = make([]AddTermRequest, len(data))
		for i, item := range data {
			pair, ok := parseAddTermRequest(item)
			if !ok {
				SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
					fmt.Sprintf("Entry at index %d is not a valid term/doc_id object", i))
				return
			}
			pairs[i] = pair
		}
	case map[string]interface{}:
		pair, ok := parseAddTermRequest(rawData)
		if !ok {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
				"Invalid request body. Expecting a term/doc_id object or an array of them")
			return
		}
		pairs = []AddTermRequest{pair}
	default:
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Invalid request body. Expecting a term/doc_id object or an array of them")
		return
	}

	if len(pairs) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "No term entries provided")
		return
	}

	for i, pair := range pairs {
		if result := ValidateTerm(pair.Term); result.HasErrors() {
			result.Errors[0].Field = fmt.Sprintf("term[%d]", i)
			SendStructuredValidationError(c, result)
			return
		}
	}

	for _, pair := range pairs {
		if err := indexAccessor.AddTerm(index.DocID(pair.DocID), pair.Term); err != nil {
			if errors.Is(err, indexerrors.ErrCorruptData) {
				SendCorruptDataError(c, pair.Term, indexName, err)
				return
			}
			SendIndexingError(c, "add term", err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d term entry(ies) added to index '%s'", len(pairs), indexName)})
}

func parseAddTermRequest(item interface{}) (AddTermRequest, bool) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return AddTermRequest{}, false
	}
	term, ok := m["term"].(string)
	if !ok {
		return AddTermRequest{}, false
	}
	num, ok := m["doc_id"].(json.Number)
	if !ok {
		return AddTermRequest{}, false
	}
	id, err := strconv.ParseUint(num.String(), 10, 64)
	if err != nil {
		// Fractional, negative, or out-of-range ids are rejected, never rounded.
		return AddTermRequest{}, false
	}
	return AddTermRequest{Term: term, DocID: id}, true
}

// DocVectorResponse is the posting list returned for a term.
type DocVectorResponse struct {
	Term   string   `json:"term"`
	DocIDs []uint64 `json:"doc_ids"`
	Count  int      `json:"count"`
}

// GetDocVectorHandler returns the ascending, duplicate-free posting list for a
// term. A term that was never added yields a 404, not an empty list.
func (api *API) GetDocVectorHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	term := c.Param("term")

	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	list, found, err := indexAccessor.DocVector(term)
	if err != nil {
		if errors.Is(err, indexerrors.ErrCorruptData) {
			SendCorruptDataError(c, term, indexName, err)
			return
		}
		SendInternalError(c, "posting list read", err)
		return
	}
	if !found {
		SendTermNotFoundError(c, indexerrors.NewTermNotFoundError(term, indexName))
		return
	}

	docIDs := make([]uint64, len(list))
	for i, id := range list {
		docIDs[i] = uint64(id)
	}
	c.JSON(http.StatusOK, DocVectorResponse{Term: term, DocIDs: docIDs, Count: len(docIDs)})
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-posting-index",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
