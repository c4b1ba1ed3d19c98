package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"beanvault/internal/domain"
	"beanvault/internal/handler"
	"beanvault/internal/service"
	"beanvault/mocks"
)

func newBeanRouter(beanService *mocks.MockBeanService) *gin.Engine {
	h := handler.NewBeanHandler(beanService)
	router := gin.New()
	beans := router.Group("/api/v1/beans")
	{
		beans.GET("", h.List)
		beans.GET("/latest", h.Latest)
		beans.GET("/trends", h.Trends)
		beans.GET("/:provider/:year/:month/:code", h.GetByKey)
	}
	return router
}

func performGET(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBeanHandler_List(t *testing.T) {
	beanService := new(mocks.MockBeanService)
	router := newBeanRouter(beanService)

	beanService.On("List", mock.Anything, service.BeanListInput{
		Provider: "yunnan", Country: "Ethiopia", Type: "premium",
		DataYear: 2025, DataMonth: 6, Page: 2, PageSize: 50,
	}).Return(&service.BeanListOutput{
		Beans:    []domain.CoffeeBean{{Name: "Yirgacheffe"}},
		Total:    51,
		Page:     2,
		PageSize: 50,
	}, nil)

	w := performGET(router, "/api/v1/beans?provider=yunnan&country=Ethiopia&type=premium&year=2025&month=6&page=2&page_size=50")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, true, resp["success"])

	meta := resp["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(50), meta["page_size"])
	assert.Equal(t, float64(51), meta["total_items"])
	assert.Equal(t, float64(2), meta["total_pages"])
	assert.Equal(t, false, meta["has_next"])
	assert.Equal(t, true, meta["has_prev"])
}

func TestBeanHandler_Trends_RequiresName(t *testing.T) {
	beanService := new(mocks.MockBeanService)
	router := newBeanRouter(beanService)

	w := performGET(router, "/api/v1/beans/trends")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	beanService.AssertNotCalled(t, "PriceTrends", mock.Anything, mock.Anything)
}

func TestBeanHandler_Trends(t *testing.T) {
	beanService := new(mocks.MockBeanService)
	router := newBeanRouter(beanService)

	price := 84.0
	beanService.On("PriceTrends", mock.Anything, "Yirgacheffe").
		Return([]domain.PricePoint{{Name: "Yirgacheffe", DataYear: 2025, DataMonth: 6, PricePerKg: &price}}, nil)

	w := performGET(router, "/api/v1/beans/trends?name=Yirgacheffe")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, true, resp["success"])
}

func TestBeanHandler_GetByKey(t *testing.T) {
	beanService := new(mocks.MockBeanService)
	router := newBeanRouter(beanService)

	beanService.On("GetByKey", mock.Anything, "yunnan", 2025, 6, "YG-01").
		Return(&domain.CoffeeBean{Code: "YG-01", Name: "Yirgacheffe"}, nil)

	w := performGET(router, "/api/v1/beans/yunnan/2025/6/YG-01")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Yirgacheffe", data["name"])
}

func TestBeanHandler_GetByKey_BadPeriod(t *testing.T) {
	beanService := new(mocks.MockBeanService)
	router := newBeanRouter(beanService)

	w := performGET(router, "/api/v1/beans/yunnan/notayear/6/YG-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performGET(router, "/api/v1/beans/yunnan/2025/13/YG-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	beanService.AssertNotCalled(t, "GetByKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBeanHandler_GetByKey_NotFound(t *testing.T) {
	beanService := new(mocks.MockBeanService)
	router := newBeanRouter(beanService)

	beanService.On("GetByKey", mock.Anything, "yunnan", 2025, 6, "missing").
		Return(nil, domain.ErrNotFound)

	w := performGET(router, "/api/v1/beans/yunnan/2025/6/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestBeanHandler_Latest(t *testing.T) {
	beanService := new(mocks.MockBeanService)
	router := newBeanRouter(beanService)

	beanService.On("LatestAll", mock.Anything).
		Return([]domain.LatestData{{Provider: "yunnan", DataYear: 2025, DataMonth: 6}}, nil)

	w := performGET(router, "/api/v1/beans/latest")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	data := resp["data"].([]interface{})
	assert.Len(t, data, 1)
}
