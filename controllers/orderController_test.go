package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func putOrder(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/orders/o-1", strings.NewReader(body))
	c.Params = gin.Params{{Key: "order_id", Value: "o-1"}}
	UpdateOrder()(c)
	return w
}

// A request carrying both mutations could fail its status branch after
// the items edit already persisted; it must be rejected up front instead.
func TestUpdateOrderRejectsItemsAndStatusTogether(t *testing.T) {
	w := putOrder(t, `{"items":[{"menu_item_id":"item-a","quantity":1,"price":5.0}],"status":"ready"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not both")
}

func TestUpdateOrderRejectsEmptyBody(t *testing.T) {
	w := putOrder(t, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "nothing to update")
}
