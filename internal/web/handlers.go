package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iamJABASTIN/attendance-tracker/internal/auth"
	"github.com/iamJABASTIN/attendance-tracker/internal/record"
	"github.com/iamJABASTIN/attendance-tracker/internal/user"
)

func (s *Server) handleLoginForm(c *gin.Context) {
	if _, err := s.sessionFromCookie(c); err == nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login", gin.H{"Flash": s.popFlash(c)})
}

func (s *Server) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	sess, err := s.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.setFlash(c, flashDanger, "Invalid username or password.")
		} else {
			s.log.Error().Err(err).Msg("login failed")
			s.setFlash(c, flashDanger, "Something went wrong. Please try again.")
		}
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.SetCookie(sessionCookie, sess.Token, int(s.cfg.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) handleLogout(c *gin.Context) {
	if sess, err := s.sessionFromCookie(c); err == nil {
		if err := s.auth.Logout(c.Request.Context(), sess); err != nil {
			s.log.Error().Err(err).Msg("logout failed")
		}
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	s.setFlash(c, flashSuccess, "You have been logged out.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) handleDashboard(c *gin.Context) {
	sess, ok := s.requirePage(c)
	if !ok {
		return
	}
	records, err := s.records.ListAll(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list records failed")
		c.HTML(http.StatusInternalServerError, "dashboard", gin.H{
			"Session": sess,
			"Classes": record.Classes,
			"Flash":   &Flash{Level: flashDanger, Message: "Failed to load records."},
		})
		return
	}
	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Session": sess,
		"Classes": record.Classes,
		"Records": records,
		"Flash":   s.popFlash(c),
	})
}

func (s *Server) handleCreateRecord(c *gin.Context) {
	if _, ok := s.requirePage(c); !ok {
		return
	}
	_, err := s.records.Create(c.Request.Context(),
		c.PostForm("student_id"), c.PostForm("name"), c.PostForm("class"), c.PostForm("date"))
	if err != nil {
		s.flashRecordError(c, err)
	} else {
		s.setFlash(c, flashSuccess, "Record added successfully!")
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) handleUpdateRecord(c *gin.Context) {
	if _, ok := s.requirePage(c); !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.setFlash(c, flashDanger, "Record not found!")
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	_, err = s.records.Update(c.Request.Context(), id,
		c.PostForm("student_id"), c.PostForm("name"), c.PostForm("class"), c.PostForm("date"))
	if err != nil {
		s.flashRecordError(c, err)
	} else {
		s.setFlash(c, flashSuccess, "Record updated successfully!")
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) handleDeleteRecordJSON(c *gin.Context) {
	if _, ok := s.requireJSON(c); !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	if err := s.records.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, record.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		s.log.Error().Err(err).Int64("id", id).Msg("delete record failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleDeleteRecordForm(c *gin.Context) {
	if _, ok := s.requirePage(c); !ok {
		return
	}
	id, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	var err error
	if perr != nil {
		err = record.ErrNotFound
	} else {
		err = s.records.Delete(c.Request.Context(), id)
	}
	if err != nil {
		s.flashRecordError(c, err)
	} else {
		s.setFlash(c, flashSuccess, "Record deleted successfully!")
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// handleSearch renders just the table rows for the dashboard's live search.
func (s *Server) handleSearch(c *gin.Context) {
	if _, ok := s.requireJSON(c); !ok {
		return
	}
	records, err := s.records.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.log.Error().Err(err).Msg("search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.HTML(http.StatusOK, "records_rows", records)
}

// handleGetRecord hydrates the edit form.
func (s *Server) handleGetRecord(c *gin.Context) {
	if _, ok := s.requireJSON(c); !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	rec, err := s.records.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		s.log.Error().Err(err).Int64("id", id).Msg("get record failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleReportsForm(c *gin.Context) {
	sess, ok := s.requirePage(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "reports", gin.H{
		"Session":     sess,
		"Classes":     record.Classes,
		"Flash":       s.popFlash(c),
		"ClassFilter": "",
		"DateFrom":    "",
		"DateTo":      "",
	})
}

func (s *Server) handleGenerateReport(c *gin.Context) {
	sess, ok := s.requirePage(c)
	if !ok {
		return
	}
	classFilter := c.PostForm("class_filter")
	dateFrom := c.PostForm("date_from")
	dateTo := c.PostForm("date_to")

	records, err := s.records.Report(c.Request.Context(), classFilter, dateFrom, dateTo)
	if err != nil {
		s.log.Error().Err(err).Msg("report failed")
		s.setFlash(c, flashDanger, "Failed to generate report.")
		c.Redirect(http.StatusSeeOther, "/reports")
		return
	}

	if c.PostForm("report_type") == "csv" {
		c.Header("Content-Disposition", `attachment; filename="attendance_report.csv"`)
		c.Header("Content-Type", "text/csv")
		if err := record.WriteCSV(c.Writer, records); err != nil {
			s.log.Error().Err(err).Msg("csv export failed")
		}
		return
	}

	c.HTML(http.StatusOK, "reports", gin.H{
		"Session":     sess,
		"Classes":     record.Classes,
		"Records":     records,
		"Generated":   true,
		"ClassFilter": classFilter,
		"DateFrom":    dateFrom,
		"DateTo":      dateTo,
	})
}

func (s *Server) handleListUsers(c *gin.Context) {
	sess, ok := s.requirePage(c)
	if !ok {
		return
	}
	users, err := s.auth.ListUsers(c.Request.Context(), sess)
	if err != nil {
		s.flashAuthError(c, err)
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "users", gin.H{
		"Session": sess,
		"Users":   users,
		"Flash":   s.popFlash(c),
	})
}

func (s *Server) handleRegister(c *gin.Context) {
	sess, ok := s.requirePage(c)
	if !ok {
		return
	}
	_, err := s.auth.Register(c.Request.Context(), sess,
		c.PostForm("username"), c.PostForm("password"), c.PostForm("role"))
	if err != nil {
		s.flashAuthError(c, err)
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}
	s.setFlash(c, flashSuccess, "User registered successfully!")
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (s *Server) handleDeleteUserJSON(c *gin.Context) {
	sess, ok := s.requireJSON(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	switch err := s.auth.DeleteUser(c.Request.Context(), sess, id); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, auth.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete self"})
	case errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		s.log.Error().Err(err).Int64("id", id).Msg("delete user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
	}
}

func (s *Server) handleDeleteUserForm(c *gin.Context) {
	sess, ok := s.requirePage(c)
	if !ok {
		return
	}
	id, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	var err error
	if perr != nil {
		err = user.ErrNotFound
	} else {
		err = s.auth.DeleteUser(c.Request.Context(), sess, id)
	}
	if err != nil {
		s.flashAuthError(c, err)
	} else {
		s.setFlash(c, flashSuccess, "User deleted successfully!")
	}
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

// handleBootstrap is the idempotent one-time admin creation endpoint. It is
// deliberately unauthenticated: it must work before any account exists, and
// repeating it changes nothing.
func (s *Server) handleBootstrap(c *gin.Context) {
	u, created, err := s.auth.BootstrapAdmin(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("bootstrap failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bootstrap failed"})
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"username": u.Username, "role": u.Role, "created": created})
}

func (s *Server) flashRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, record.ErrValidation):
		s.setFlash(c, flashDanger, "All fields are required!")
	case errors.Is(err, record.ErrNotFound):
		s.setFlash(c, flashDanger, "Record not found!")
	default:
		s.log.Error().Err(err).Msg("record operation failed")
		s.setFlash(c, flashDanger, "Something went wrong. Please try again.")
	}
}

func (s *Server) flashAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		s.setFlash(c, flashDanger, "Admin access required.")
	case errors.Is(err, auth.ErrSelfDelete):
		s.setFlash(c, flashDanger, "You cannot delete your own account.")
	case errors.Is(err, auth.ErrMissingFields):
		s.setFlash(c, flashDanger, "Username and password are required.")
	case errors.Is(err, user.ErrUsernameTaken):
		s.setFlash(c, flashDanger, "Username is already taken.")
	case errors.Is(err, user.ErrNotFound):
		s.setFlash(c, flashDanger, "User not found.")
	default:
		s.log.Error().Err(err).Msg("user operation failed")
		s.setFlash(c, flashDanger, "Something went wrong. Please try again.")
	}
}
