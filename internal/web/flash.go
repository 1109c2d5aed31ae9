package web

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "att_flash"

const (
	flashSuccess = "success"
	flashDanger  = "danger"
)

// Flash is a one-shot message rendered into the next page.
type Flash struct {
	Level   string
	Message string
}

func (s *Server) setFlash(c *gin.Context, level, message string) {
	c.SetCookie(flashCookie, level+"|"+message, 60, "/", "", false, true)
}

// popFlash reads and clears the flash cookie.
func (s *Server) popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	level, message, found := strings.Cut(raw, "|")
	if !found {
		return &Flash{Level: flashDanger, Message: raw}
	}
	return &Flash{Level: level, Message: message}
}
