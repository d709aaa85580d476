package generator

import (
	"strconv"
	"time"

	"github.com/noah-isme/luminosity-datagen/internal/models"
	"github.com/noah-isme/luminosity-datagen/pkg/export"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Datasets converts the year's tables plus the registry and catalog
// snapshots into named CSV-ready datasets, one per output file.
func (g *AcademicGenerator) Datasets(tables *YearTables) map[string]export.Dataset {
	out := map[string]export.Dataset{}

	for name, ds := range g.referenceDatasets() {
		out[name] = ds
	}
	out["students"] = g.studentDataset()
	out["teachers"] = g.teacherDataset()
	out["subjects"] = g.subjectDataset()
	out["guardians"] = g.guardianDataset()
	out["student_guardians"] = g.studentGuardianDataset()

	out["classes"] = classDataset(tables.Classes)
	out["enrollments"] = enrollmentDataset(tables.Enrollments)
	out["teacher_subjects"] = teacherSubjectDataset(tables.TeacherSubjects)
	out["assignments"] = assignmentDataset(tables.Assignments)
	out["grades"] = gradeDataset(tables.Grades)
	out["attendance"] = attendanceDataset(tables.Attendance)
	out["discipline_reports"] = disciplineDataset(tables.Discipline)
	out["standardized_tests"] = testDataset(tables.Tests)
	out["student_grade_history"] = gradeHistoryDataset(tables.GradeHistory)
	out["payments"] = paymentDataset(tables.Payments)
	out["school_years"] = schoolYearDataset(tables.SchoolYear)
	out["terms"] = termDataset(tables.Terms)
	out["school_calendar"] = calendarDataset(tables.Calendar)

	return out
}

func (g *AcademicGenerator) referenceDatasets() map[string]export.Dataset {
	cat := g.catalog

	metadata := export.Dataset{Headers: []string{"school_name", "address", "city", "state", "zip", "phone", "email", "principal"}}
	metadata.Append(map[string]string{
		"school_name": cat.Metadata.SchoolName,
		"address":     cat.Metadata.Address,
		"city":        cat.Metadata.City,
		"state":       cat.Metadata.State,
		"zip":         cat.Metadata.Zip,
		"phone":       cat.Metadata.Phone,
		"email":       cat.Metadata.Email,
		"principal":   cat.Metadata.Principal,
	})

	departments := export.Dataset{Headers: []string{"department_id", "name"}}
	for _, d := range cat.Departments {
		departments.Append(map[string]string{"department_id": itoa(d.ID), "name": d.Name})
	}

	gradeLevels := export.Dataset{Headers: []string{"grade_level_id", "label"}}
	for _, l := range cat.GradeLevels {
		gradeLevels.Append(map[string]string{"grade_level_id": itoa(l.ID), "label": l.Label})
	}

	guardianTypes := export.Dataset{Headers: []string{"guardian_type_id", "label"}}
	for _, t := range cat.GuardianTypes {
		guardianTypes.Append(map[string]string{"guardian_type_id": itoa(t.ID), "label": t.Label})
	}

	// Fee amounts reflect the schedule as adjusted through the current year.
	feeTypes := export.Dataset{Headers: []string{"fee_type_id", "name", "amount", "frequency"}}
	for _, f := range cat.FeeTypes {
		feeTypes.Append(map[string]string{
			"fee_type_id": itoa(f.ID),
			"name":        f.Name,
			"amount":      itoa(g.fees.Amount(f.ID)),
			"frequency":   f.Frequency,
		})
	}

	periods := export.Dataset{Headers: []string{"period_id", "label", "start_time", "end_time"}}
	for _, p := range cat.Periods {
		periods.Append(map[string]string{
			"period_id":  itoa(p.ID),
			"label":      p.Label,
			"start_time": p.StartTime,
			"end_time":   p.EndTime,
		})
	}

	classrooms := export.Dataset{Headers: []string{"classroom_id", "room_number", "capacity"}}
	for _, c := range cat.Classrooms {
		classrooms.Append(map[string]string{
			"classroom_id": itoa(c.ID),
			"room_number":  c.RoomNumber,
			"capacity":     itoa(c.Capacity),
		})
	}

	return map[string]export.Dataset{
		"school_metadata": metadata,
		"departments":     departments,
		"grade_levels":    gradeLevels,
		"guardian_types":  guardianTypes,
		"fee_types":       feeTypes,
		"periods":         periods,
		"classrooms":      classrooms,
	}
}

func (g *AcademicGenerator) studentDataset() export.Dataset {
	ds := export.Dataset{Headers: []string{"student_id", "first_name", "last_name", "gender", "date_of_birth", "grade_level_id"}}
	for _, s := range g.students.ActiveStudents() {
		ds.Append(map[string]string{
			"student_id":     itoa(s.ID),
			"first_name":     s.FirstName,
			"last_name":      s.LastName,
			"gender":         s.Gender,
			"date_of_birth":  formatDate(s.DateOfBirth),
			"grade_level_id": itoa(s.GradeLevel),
		})
	}
	return ds
}

func (g *AcademicGenerator) teacherDataset() export.Dataset {
	ds := export.Dataset{Headers: []string{"teacher_id", "first_name", "last_name", "department_id"}}
	for _, t := range g.teachers.ActiveTeachers() {
		ds.Append(map[string]string{
			"teacher_id":    itoa(t.ID),
			"first_name":    t.FirstName,
			"last_name":     t.LastName,
			"department_id": itoa(t.DepartmentID),
		})
	}
	return ds
}

func (g *AcademicGenerator) subjectDataset() export.Dataset {
	ds := export.Dataset{Headers: []string{"subject_id", "name", "department_id"}}
	for _, s := range g.curriculum.Subjects() {
		ds.Append(map[string]string{
			"subject_id":    itoa(s.ID),
			"name":          s.Name,
			"department_id": itoa(s.DepartmentID),
		})
	}
	return ds
}

func (g *AcademicGenerator) guardianDataset() export.Dataset {
	ds := export.Dataset{Headers: []string{"guardian_id", "first_name", "last_name", "email", "phone"}}
	for _, gu := range g.guardians.ActiveGuardians() {
		ds.Append(map[string]string{
			"guardian_id": itoa(gu.ID),
			"first_name":  gu.FirstName,
			"last_name":   gu.LastName,
			"email":       gu.Email,
			"phone":       gu.Phone,
		})
	}
	return ds
}

func (g *AcademicGenerator) studentGuardianDataset() export.Dataset {
	ds := export.Dataset{Headers: []string{"student_id", "guardian_id", "guardian_type_id", "family_id"}}
	for _, rel := range g.guardians.Relationships() {
		ds.Append(map[string]string{
			"student_id":       itoa(rel.StudentID),
			"guardian_id":      itoa(rel.GuardianID),
			"guardian_type_id": itoa(rel.GuardianTypeID),
			"family_id":        rel.FamilyID,
		})
	}
	return ds
}

func classDataset(classes []models.Class) export.Dataset {
	ds := export.Dataset{Headers: []string{"class_id", "name", "grade_level_id", "teacher_id", "classroom_id", "period_id", "term_id"}}
	for _, c := range classes {
		ds.Append(map[string]string{
			"class_id":       itoa(c.ID),
			"name":           c.Name,
			"grade_level_id": itoa(c.GradeLevel),
			"teacher_id":     itoa(c.TeacherID),
			"classroom_id":   itoa(c.ClassroomID),
			"period_id":      itoa(c.PeriodID),
			"term_id":        itoa(c.TermID),
		})
	}
	return ds
}

func enrollmentDataset(enrollments []models.Enrollment) export.Dataset {
	ds := export.Dataset{Headers: []string{"enrollment_id", "student_id", "class_id"}}
	for _, e := range enrollments {
		ds.Append(map[string]string{
			"enrollment_id": e.ID,
			"student_id":    itoa(e.StudentID),
			"class_id":      itoa(e.ClassID),
		})
	}
	return ds
}

func teacherSubjectDataset(rows []models.TeacherSubject) export.Dataset {
	ds := export.Dataset{Headers: []string{"teacher_id", "subject_id", "department_id"}}
	for _, r := range rows {
		ds.Append(map[string]string{
			"teacher_id":    itoa(r.TeacherID),
			"subject_id":    itoa(r.SubjectID),
			"department_id": itoa(r.DepartmentID),
		})
	}
	return ds
}

func assignmentDataset(assignments []models.Assignment) export.Dataset {
	ds := export.Dataset{Headers: []string{"assignment_id", "class_id", "title", "due_date", "points_possible", "category", "term_id"}}
	for _, a := range assignments {
		ds.Append(map[string]string{
			"assignment_id":   itoa(a.ID),
			"class_id":        itoa(a.ClassID),
			"title":           a.Title,
			"due_date":        formatDate(a.DueDate),
			"points_possible": itoa(a.PointsPossible),
			"category":        a.Category,
			"term_id":         itoa(a.TermID),
		})
	}
	return ds
}

func gradeDataset(grades []models.Grade) export.Dataset {
	ds := export.Dataset{Headers: []string{"grade_id", "student_id", "assignment_id", "score", "submitted_on", "term_id"}}
	for _, gr := range grades {
		ds.Append(map[string]string{
			"grade_id":      itoa(gr.ID),
			"student_id":    itoa(gr.StudentID),
			"assignment_id": itoa(gr.AssignmentID),
			"score":         itoa(gr.Score),
			"submitted_on":  formatDate(gr.SubmittedOn),
			"term_id":       itoa(gr.TermID),
		})
	}
	return ds
}

func attendanceDataset(records []models.AttendanceRecord) export.Dataset {
	ds := export.Dataset{Headers: []string{"attendance_id", "student_id", "date", "status", "notes"}}
	for _, r := range records {
		ds.Append(map[string]string{
			"attendance_id": r.ID,
			"student_id":    itoa(r.StudentID),
			"date":          formatDate(r.Date),
			"status":        string(r.Status),
			"notes":         r.Notes,
		})
	}
	return ds
}

func disciplineDataset(reports []models.DisciplineReport) export.Dataset {
	ds := export.Dataset{Headers: []string{"discipline_report_id", "student_id", "date", "severity", "type", "action_taken"}}
	for _, r := range reports {
		ds.Append(map[string]string{
			"discipline_report_id": r.ID,
			"student_id":           itoa(r.StudentID),
			"date":                 formatDate(r.Date),
			"severity":             r.Severity,
			"type":                 r.Type,
			"action_taken":         r.ActionTaken,
		})
	}
	return ds
}

func testDataset(tests []models.StandardizedTest) export.Dataset {
	ds := export.Dataset{Headers: []string{"test_id", "student_id", "test_name", "test_date", "score", "subject", "percentile"}}
	for _, t := range tests {
		ds.Append(map[string]string{
			"test_id":    t.ID,
			"student_id": itoa(t.StudentID),
			"test_name":  t.TestName,
			"test_date":  formatDate(t.TestDate),
			"score":      itoa(t.Score),
			"subject":    t.Subject,
			"percentile": itoa(t.Percentile),
		})
	}
	return ds
}

func gradeHistoryDataset(history []models.GradeHistory) export.Dataset {
	ds := export.Dataset{Headers: []string{"student_grade_history_id", "student_id", "school_year_id", "gpa", "grade_level_id"}}
	for _, h := range history {
		ds.Append(map[string]string{
			"student_grade_history_id": h.ID,
			"student_id":               itoa(h.StudentID),
			"school_year_id":           itoa(h.SchoolYearID),
			"gpa":                      strconv.FormatFloat(h.GPA, 'f', 3, 64),
			"grade_level_id":           itoa(h.GradeLevel),
		})
	}
	return ds
}

func paymentDataset(payments []models.Payment) export.Dataset {
	ds := export.Dataset{Headers: []string{"payment_id", "guardian_id", "fee_type_id", "amount_paid", "payment_date"}}
	for _, p := range payments {
		ds.Append(map[string]string{
			"payment_id":   p.ID,
			"guardian_id":  itoa(p.GuardianID),
			"fee_type_id":  itoa(p.FeeTypeID),
			"amount_paid":  itoa(p.AmountPaid),
			"payment_date": formatDate(p.PaymentDate),
		})
	}
	return ds
}

func schoolYearDataset(sy models.SchoolYear) export.Dataset {
	ds := export.Dataset{Headers: []string{"school_year_id", "start_date", "end_date"}}
	ds.Append(map[string]string{
		"school_year_id": itoa(sy.ID),
		"start_date":     formatDate(sy.StartDate),
		"end_date":       formatDate(sy.EndDate),
	})
	return ds
}

func termDataset(terms []models.Term) export.Dataset {
	ds := export.Dataset{Headers: []string{"term_id", "label", "start_date", "end_date", "school_year_id"}}
	for _, t := range terms {
		ds.Append(map[string]string{
			"term_id":        itoa(t.ID),
			"label":          t.Label,
			"start_date":     formatDate(t.StartDate),
			"end_date":       formatDate(t.EndDate),
			"school_year_id": itoa(t.SchoolYearID),
		})
	}
	return ds
}

func calendarDataset(days []models.CalendarDay) export.Dataset {
	ds := export.Dataset{Headers: []string{"calendar_date", "is_school_day", "is_holiday", "holiday_name", "comment", "day_type", "label"}}
	for _, d := range days {
		ds.Append(map[string]string{
			"calendar_date": formatDate(d.Date),
			"is_school_day": formatBool(d.IsSchoolDay),
			"is_holiday":    formatBool(d.IsHoliday),
			"holiday_name":  d.HolidayName,
			"comment":       d.Label,
			"day_type":      d.DayType,
			"label":         d.Label,
		})
	}
	return ds
}
