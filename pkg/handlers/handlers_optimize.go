package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/optimizer-api-go/pkg/database"
	"github.com/arnavshah/optimizer-api-go/pkg/models"
	"github.com/arnavshah/optimizer-api-go/pkg/optimizer"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OptimizeJSON handles the JSON-based optimization request
func (h *Handler) OptimizeJSON(c *gin.Context) {
	var input models.ProblemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "ERROR", "error": err.Error()})
		return
	}

	result := optimizer.Optimize(&input, h.requestTimeLimit(c))
	h.RecordUsage(c, &input, result)

	c.JSON(h.statusCode(result), result)
}

// requestTimeLimit returns the solver budget for one request. A time_limit
// query parameter (seconds) may shorten, but never extend, the configured cap.
func (h *Handler) requestTimeLimit(c *gin.Context) time.Duration {
	limit := h.TimeLimit
	if limit <= 0 {
		limit = optimizer.DefaultTimeLimit
	}
	if raw := c.Query("time_limit"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			if requested := time.Duration(seconds) * time.Second; requested < limit {
				limit = requested
			}
		}
	}
	return limit
}

// statusCode maps a solve result onto an HTTP status. Solver outcomes,
// including INFEASIBLE, are valid results; only errors are 4xx/5xx.
func (h *Handler) statusCode(result *models.SolveResult) int {
	if result.Status != "ERROR" {
		return http.StatusOK
	}
	if result.Traceback != "" {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// RecordUsage records API usage and the solve outcome in the database
func (h *Handler) RecordUsage(c *gin.Context, input *models.ProblemInput, result *models.SolveResult) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	today := time.Now().Format("2006-01-02")

	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":   gorm.Expr("request_count + ?", 1),
			"total_shifts":    gorm.Expr("total_shifts + ?", len(input.Shifts)),
			"total_employees": gorm.Expr("total_employees + ?", len(input.Employees)),
		}),
	}).Create(&database.APIUsage{
		KeyID:          apiKey.ID,
		Date:           today,
		RequestCount:   1,
		TotalShifts:    len(input.Shifts),
		TotalEmployees: len(input.Employees),
	})

	h.DB.Create(&database.SolveRun{
		KeyID:            apiKey.ID,
		Status:           result.Status,
		ObjectiveValue:   result.ObjectiveValue,
		SolveTimeSeconds: result.SolveTimeSeconds,
		ShiftCount:       len(input.Shifts),
		EmployeeCount:    len(input.Employees),
		AssignmentCount:  len(result.Assignments),
	})
}

// OptimizeCSV handles CSV file uploads for optimization
func (h *Handler) OptimizeCSV(c *gin.Context) {
	shiftsFile, _ := c.FormFile("shifts_file")
	employeesFile, _ := c.FormFile("employees_file")

	if shiftsFile == nil || employeesFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shifts_file and employees_file are required"})
		return
	}

	shifts, err := parseShiftsCSV(shiftsFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employees, err := parseEmployeesCSV(employeesFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &models.ProblemInput{Shifts: shifts, Employees: employees}
	result := optimizer.Optimize(input, h.requestTimeLimit(c))
	h.RecordUsage(c, input, result)

	if result.Status == "ERROR" {
		c.JSON(h.statusCode(result), result)
		return
	}

	// Export CSV
	var outCSV strings.Builder
	writer := csv.NewWriter(&outCSV)
	writer.Write([]string{"employee_id", "shift_id", "date", "start_time", "end_time", "hours"})
	for _, a := range result.Assignments {
		writer.Write([]string{
			a.EmployeeID,
			a.ShiftID,
			a.Date,
			a.StartTime,
			a.EndTime,
			strconv.Itoa(a.Hours),
		})
	}
	writer.Flush()

	c.JSON(http.StatusOK, gin.H{
		"status": result.Status,
		"csv":    outCSV.String(),
	})
}

// csvColumns reads a header row into a name -> index map
func csvColumns(r *csv.Reader) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols, nil
}

func splitList(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseShiftsCSV(file *multipart.FileHeader) ([]models.Shift, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open shifts file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	cols, err := csvColumns(reader)
	if err != nil {
		return nil, err
	}

	var shifts []models.Shift
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		minStaff, _ := strconv.Atoi(record[cols["min_staff"]])
		maxStaff, _ := strconv.Atoi(record[cols["max_staff"]])
		shift := models.Shift{
			ID:        record[cols["id"]],
			Date:      record[cols["date"]],
			StartTime: record[cols["start_time"]],
			EndTime:   record[cols["end_time"]],
			MinStaff:  minStaff,
			MaxStaff:  maxStaff,
		}
		if idx, ok := cols["required_skills"]; ok {
			shift.RequiredSkills = splitList(record[idx])
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}

func parseEmployeesCSV(file *multipart.FileHeader) ([]models.Employee, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open employees file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	cols, err := csvColumns(reader)
	if err != nil {
		return nil, err
	}

	var employees []models.Employee
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		emp := models.Employee{ID: record[cols["id"]]}
		if idx, ok := cols["name"]; ok {
			emp.Name = record[idx]
		}
		if idx, ok := cols["skills"]; ok {
			emp.Skills = splitList(record[idx])
		}
		if idx, ok := cols["unavailable_dates"]; ok {
			emp.UnavailableDates = splitList(record[idx])
		}
		if idx, ok := cols["max_hours_per_week"]; ok {
			emp.MaxHoursPerWeek, _ = strconv.Atoi(record[idx])
		}
		if idx, ok := cols["max_consecutive_days"]; ok {
			emp.MaxConsecutiveDays, _ = strconv.Atoi(record[idx])
		}
		employees = append(employees, emp)
	}
	return employees, nil
}
