package handlers

import (
	"encoding/csv"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
	"github.com/TheVinit/GFM-record-management-app-sub000/roster"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

var (
	stuRePrn   = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)
	stuRePhone = regexp.MustCompile(`^[0-9]{10}$`)
)

type studentPayload struct {
	Prn              string `json:"prn" validate:"required"`
	RollNo           string `json:"roll_no"`
	FullName         string `json:"full_name" validate:"required"`
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone"`
	ParentMobile     string `json:"parent_mobile"`
	Branch           string `json:"branch" validate:"required"`
	YearOfStudy      string `json:"year_of_study" validate:"required"`
	Division         string `json:"division" validate:"required"`
	Gender           string `json:"gender"`
	Dob              string `json:"dob"`
	Category         string `json:"category"`
	Aadhar           string `json:"aadhar" validate:"omitempty,len=12,numeric"`
	PermanentAddress string `json:"permanent_address"`
	TemporaryAddress string `json:"temporary_address"`
	FatherName       string `json:"father_name"`
	MotherName       string `json:"mother_name"`
	FatherPhone      string `json:"father_phone"`
	AnnualIncome     string `json:"annual_income"`
	AdmissionType    string `json:"admission_type"`
	PhotoURI         string `json:"photo_uri"`
}

func (p *studentPayload) normalize() {
	p.Prn = strings.ToUpper(strings.TrimSpace(p.Prn))
	p.RollNo = strings.ToUpper(strings.TrimSpace(p.RollNo))
	p.FullName = strings.Join(strings.Fields(p.FullName), " ")
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	p.ParentMobile = strings.TrimSpace(p.ParentMobile)
	p.Branch = strings.TrimSpace(p.Branch)
	p.YearOfStudy = strings.TrimSpace(p.YearOfStudy)
	p.Division = strings.ToUpper(strings.TrimSpace(p.Division))
}

func (p *studentPayload) check() map[string]string {
	errs := map[string]string{}
	if !stuRePrn.MatchString(p.Prn) {
		errs["prn"] = "PRN must be alphanumeric, at most 20 characters"
	}
	if p.Phone != "" && !stuRePhone.MatchString(p.Phone) {
		errs["phone"] = "mobile number must be exactly 10 digits"
	}
	if p.ParentMobile != "" && !stuRePhone.MatchString(p.ParentMobile) {
		errs["parent_mobile"] = "mobile number must be exactly 10 digits"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (p *studentPayload) toModel() models.Student {
	return models.Student{
		Prn: p.Prn, RollNo: p.RollNo, FullName: p.FullName, Email: p.Email,
		Phone: p.Phone, ParentMobile: p.ParentMobile, Branch: p.Branch,
		YearOfStudy: p.YearOfStudy, Division: p.Division, Gender: p.Gender,
		Dob: p.Dob, Category: p.Category, Aadhar: p.Aadhar,
		PermanentAddress: p.PermanentAddress, TemporaryAddress: p.TemporaryAddress,
		FatherName: p.FatherName, MotherName: p.MotherName, FatherPhone: p.FatherPhone,
		AnnualIncome: p.AnnualIncome, AdmissionType: p.AdmissionType, PhotoURI: p.PhotoURI,
	}
}

/* ====================== CRUD ====================== */

// GET /students?branch=&year=&division=&q=&page=&size=
func (h *StudentHandler) List(c echo.Context) error {
	branch := strings.TrimSpace(c.QueryParam("branch"))
	year := strings.TrimSpace(c.QueryParam("year"))
	division := strings.TrimSpace(c.QueryParam("division"))
	q := strings.TrimSpace(c.QueryParam("q"))

	page := atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	size := atoiOr(c.QueryParam("size"), 50)
	if size < 1 || size > 200 {
		size = 50
	}

	tx := database.DB.Model(&models.Student{})
	if branch != "" {
		tx = tx.Where("branch = ?", branch)
	}
	if year != "" {
		tx = tx.Where("year_of_study = ?", year)
	}
	if division != "" {
		// whole-division queries match sub-batch suffixed rows too
		tx = tx.Where("division ILIKE ?", roster.MainDivision(division)+"%")
	}
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("prn ILIKE ? OR roll_no ILIKE ? OR full_name ILIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return dbError(c, err)
	}
	var items []models.Student
	if err := tx.Order("prn ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items, "page": page, "size": size, "total": total,
	})
}

// GET /students/:prn
func (h *StudentHandler) Get(c echo.Context) error {
	prn := strings.ToUpper(c.Param("prn"))
	if getRole(c) == "student" && prn != strings.ToUpper(getPrn(c)) {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	var s models.Student
	if err := database.DB.First(&s, "prn = ?", prn).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// POST /students
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return validationError(c, err)
	}
	if errs := p.check(); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	s := p.toModel()
	if err := database.DB.Create(&s).Error; err != nil {
		if kindOf(err) == errDuplicate {
			return c.JSON(http.StatusConflict, map[string]any{"error": "DUPLICATE", "message": "PRN or email already exists"})
		}
		return dbError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /students/:prn
func (h *StudentHandler) Update(c echo.Context) error {
	var existing models.Student
	if err := database.DB.First(&existing, "prn = ?", strings.ToUpper(c.Param("prn"))).Error; err != nil {
		if kindOf(err) == errNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return dbError(c, err)
	}

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Prn = existing.Prn // PRN is immutable
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return validationError(c, err)
	}
	if errs := p.check(); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	updated := p.toModel()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.VerificationStatus = existing.VerificationStatus
	if err := database.DB.Save(&updated).Error; err != nil {
		if kindOf(err) == errDuplicate {
			return c.JSON(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
		}
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DELETE /students/:prn
func (h *StudentHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Student{}, "prn = ?", strings.ToUpper(c.Param("prn"))).Error; err != nil {
		return dbError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PUT /students/:prn/verify
func (h *StudentHandler) Verify(c echo.Context) error {
	var req struct {
		Status string `json:"status" validate:"required,oneof=Pending Verified Rejected"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}
	res := database.DB.Model(&models.Student{}).
		Where("prn = ?", strings.ToUpper(c.Param("prn"))).
		Update("verification_status", req.Status)
	if res.Error != nil {
		return dbError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

/* ====================== Roster ====================== */

// GET /students/roster?department=&year=&division=&sub_batch=
// Resolves the concrete student set for a division, optionally sliced
// to a configured sub-batch range.
func (h *StudentHandler) Roster(c echo.Context) error {
	department := strings.TrimSpace(c.QueryParam("department"))
	year := strings.TrimSpace(c.QueryParam("year"))
	division := strings.TrimSpace(c.QueryParam("division"))
	subBatch := strings.TrimSpace(c.QueryParam("sub_batch"))

	if department == "" || year == "" || division == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	students, err := loadDivisionRoster(department, year, division)
	if err != nil {
		return dbError(c, err)
	}

	if subBatch != "" {
		defs, err := loadBatchDefinitions(department, year, division)
		if err != nil {
			return dbError(c, err)
		}
		def, ok := pickDefinition(defs, subBatchLabel(division, subBatch))
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "BATCH_NOT_DEFINED"})
		}
		rng := roster.Range{From: def.RbtFrom, To: def.RbtTo}
		filtered := make([]models.Student, 0, len(students))
		for _, s := range students {
			if rng.Contains(s.RollNo, s.Prn) {
				filtered = append(filtered, s)
			}
		}
		students = filtered
	}

	return c.JSON(http.StatusOK, students)
}

// loadDivisionRoster fetches a division's students ordered by PRN. The
// division match is on the main letter so "A" covers "A2" rows.
func loadDivisionRoster(department, year, division string) ([]models.Student, error) {
	var students []models.Student
	err := database.DB.
		Where("branch = ? AND division ILIKE ?", department, roster.MainDivision(division)+"%").
		Order("prn ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	// year labels vary by spelling; canonicalize in code
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		if roster.SameYear(s.YearOfStudy, year) {
			out = append(out, s)
		}
	}
	return out, nil
}

// loadBatchDefinitions fetches a division's sub-batch definitions. The
// class column holds whatever year label the admin typed, so the year
// match is canonical, in code, like the roster load above.
func loadBatchDefinitions(department, year, division string) ([]models.BatchDefinition, error) {
	var defs []models.BatchDefinition
	err := database.DB.
		Where("department = ? AND division = ?", department, roster.MainDivision(division)).
		Order("sub_batch ASC").
		Find(&defs).Error
	if err != nil {
		return nil, err
	}
	return filterDefinitionsByYear(defs, year), nil
}

func filterDefinitionsByYear(defs []models.BatchDefinition, year string) []models.BatchDefinition {
	out := make([]models.BatchDefinition, 0, len(defs))
	for _, d := range defs {
		if roster.SameYear(d.Class, year) {
			out = append(out, d)
		}
	}
	return out
}

// pickDefinition selects the definition carrying the sub-batch label.
func pickDefinition(defs []models.BatchDefinition, label string) (models.BatchDefinition, bool) {
	for _, d := range defs {
		if strings.EqualFold(d.SubBatch, label) {
			return d, true
		}
	}
	return models.BatchDefinition{}, false
}

// subBatchLabel joins division and sub-batch digit: ("A","2") -> "A2";
// a full label like "A2" passes through.
func subBatchLabel(division, subBatch string) string {
	if len(subBatch) > 0 && subBatch[0] >= '0' && subBatch[0] <= '9' {
		return roster.MainDivision(division) + subBatch
	}
	return strings.ToUpper(subBatch)
}

/* ====================== Bulk import ====================== */

// importColumn maps every recognized header alias to a canonical field.
var importColumn = map[string]string{
	"full name": "full_name", "fullname": "full_name", "name": "full_name",
	"email": "email", "email id": "email", "emailid": "email",
	"prn":   "prn",
	"phone": "phone", "mobile": "phone", "mobile number": "phone",
	"parent mobile": "parent_mobile", "parentmobile": "parent_mobile",
	"father mobile": "parent_mobile", "mother mobile": "parent_mobile",
	"branch": "branch", "department": "branch",
	"year": "year_of_study", "year of study": "year_of_study", "yearofstudy": "year_of_study",
	"division": "division", "div": "division",
	"roll no": "roll_no", "rollno": "roll_no", "roll": "roll_no",
}

// mapImportRow converts one raw header->value row into a payload with
// defaults applied. ok is false when full name or PRN is missing after
// mapping; such rows are dropped.
func mapImportRow(raw map[string]string) (studentPayload, bool) {
	fields := map[string]string{}
	for k, v := range raw {
		key := strings.ToLower(strings.TrimSpace(k))
		if canon, known := importColumn[key]; known {
			if v = strings.TrimSpace(v); v != "" {
				fields[canon] = v
			}
		}
	}

	p := studentPayload{
		Prn:          fields["prn"],
		RollNo:       fields["roll_no"],
		FullName:     fields["full_name"],
		Email:        fields["email"],
		Phone:        fields["phone"],
		ParentMobile: fields["parent_mobile"],
		Branch:       fields["branch"],
		YearOfStudy:  fields["year_of_study"],
		Division:     fields["division"],
	}
	if p.YearOfStudy == "" {
		p.YearOfStudy = "First Year"
	}
	if p.Division == "" {
		p.Division = "A"
	}
	p.normalize()
	if p.FullName == "" || p.Prn == "" {
		return p, false
	}
	return p, true
}

// POST /students/import
// Accepts either a JSON array of student payloads or a CSV multipart
// upload (field "file"). Rows missing full name or PRN are dropped and
// reported; duplicate PRN/email rows are reported per row.
func (h *StudentHandler) Import(c echo.Context) error {
	var payloads []studentPayload
	var dropped []map[string]any

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
		}
		defer f.Close()
		payloads, dropped, err = parseImportCSV(f)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_CSV", "message": err.Error()})
		}
	} else {
		var arr []studentPayload
		if err := c.Bind(&arr); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
		}
		for i, p := range arr {
			p.normalize()
			if p.YearOfStudy == "" {
				p.YearOfStudy = "First Year"
			}
			if p.Division == "" {
				p.Division = "A"
			}
			if p.FullName == "" || p.Prn == "" {
				dropped = append(dropped, map[string]any{"row": i + 1, "reason": "missing full name or PRN"})
				continue
			}
			payloads = append(payloads, p)
		}
	}

	inserted := 0
	var issues []map[string]any
	for i, p := range payloads {
		if errs := p.check(); errs != nil {
			issues = append(issues, map[string]any{"row": i + 1, "prn": p.Prn, "fields": errs})
			continue
		}
		s := p.toModel()
		if err := database.DB.Create(&s).Error; err != nil {
			reason := "DB_ERROR"
			if kindOf(err) == errDuplicate {
				reason = "DUPLICATE"
			}
			issues = append(issues, map[string]any{"row": i + 1, "prn": p.Prn, "reason": reason})
			continue
		}
		inserted++
	}

	return c.JSON(http.StatusOK, map[string]any{
		"inserted": inserted,
		"dropped":  dropped,
		"issues":   issues,
	})
}

func parseImportCSV(r io.Reader) ([]studentPayload, []map[string]any, error) {
	rd := csv.NewReader(r)
	rd.TrimLeadingSpace = true

	header, err := rd.Read()
	if err != nil {
		return nil, nil, err
	}

	var payloads []studentPayload
	var dropped []map[string]any
	row := 1
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row++

		raw := map[string]string{}
		for i, col := range header {
			if i < len(rec) {
				raw[col] = rec[i]
			}
		}
		p, ok := mapImportRow(raw)
		if !ok {
			dropped = append(dropped, map[string]any{"row": row, "reason": "missing full name or PRN"})
			continue
		}
		payloads = append(payloads, p)
	}
	return payloads, dropped, nil
}

// GET /students/export?branch=&year=&division=
func (h *StudentHandler) ExportCSV(c echo.Context) error {
	branch := strings.TrimSpace(c.QueryParam("branch"))
	year := strings.TrimSpace(c.QueryParam("year"))
	division := strings.TrimSpace(c.QueryParam("division"))

	tx := database.DB.Model(&models.Student{})
	if branch != "" {
		tx = tx.Where("branch = ?", branch)
	}
	if year != "" {
		tx = tx.Where("year_of_study = ?", year)
	}
	if division != "" {
		tx = tx.Where("division ILIKE ?", roster.MainDivision(division)+"%")
	}

	var students []models.Student
	if err := tx.Order("prn ASC").Find(&students).Error; err != nil {
		return dbError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="students.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"PRN", "Roll No", "Full Name", "Email", "Phone", "Branch", "Year", "Division", "Status"}); err != nil {
		return err
	}
	for _, s := range students {
		if err := w.Write([]string{
			s.Prn, s.RollNo, s.FullName, s.Email, s.Phone,
			s.Branch, s.YearOfStudy, s.Division, s.VerificationStatus,
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
