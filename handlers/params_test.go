package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextFor(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestQueryUserID(t *testing.T) {
	cases := []struct {
		query string
		want  string
		ok    bool
	}{
		{"/?userId=u1", "u1", true},
		{"/", "", false},
		{"/?userId=", "", false},
		{"/?userId=u1&userId=u2", "", false},
	}
	for _, tc := range cases {
		got, ok := queryUserID(contextFor(tc.query))
		assert.Equal(t, tc.ok, ok, tc.query)
		assert.Equal(t, tc.want, got, tc.query)
	}
}

func TestQueryUnreadOnly(t *testing.T) {
	cases := []struct {
		query   string
		want    bool
		wantErr bool
	}{
		{"/", false, false},
		{"/?unreadOnly=true", true, false},
		{"/?unreadOnly=1", true, false},
		{"/?unreadOnly=false", false, false},
		{"/?unreadOnly=maybe", false, true},
		{"/?unreadOnly=true&unreadOnly=false", false, true},
	}
	for _, tc := range cases {
		got, err := queryUnreadOnly(contextFor(tc.query))
		if tc.wantErr {
			assert.Error(t, err, tc.query)
			continue
		}
		assert.NoError(t, err, tc.query)
		assert.Equal(t, tc.want, got, tc.query)
	}
}
