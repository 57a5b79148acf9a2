package handlers

import (
	"tutorcenter/internal/domain/catalogs/classsubject"
	"tutorcenter/internal/domain/catalogs/sheet"
	"tutorcenter/internal/domain/catalogs/student"
	"tutorcenter/internal/domain/catalogs/subject"
	"tutorcenter/internal/domain/catalogs/tutoringclass"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// NewStudentHandler serves /students.
func NewStudentHandler(base *BaseHandler, service *student.Service) *CatalogHandler[*student.Student] {
	return newCatalogHandler[*student.Student, dto.CreateStudentRequest, dto.UpdateStudentRequest](
		base, service.CatalogService,
		func(st *student.Student) any { return dto.FromStudent(st) },
	)
}

// NewClassHandler serves /classes.
func NewClassHandler(base *BaseHandler, service *tutoringclass.Service) *CatalogHandler[*tutoringclass.TutoringClass] {
	return newCatalogHandler[*tutoringclass.TutoringClass, dto.CreateClassRequest, dto.UpdateClassRequest](
		base, service.CatalogService,
		func(c *tutoringclass.TutoringClass) any { return dto.FromClass(c) },
	)
}

// NewSubjectHandler serves /subjects.
func NewSubjectHandler(base *BaseHandler, service *subject.Service) *CatalogHandler[*subject.Subject] {
	return newCatalogHandler[*subject.Subject, dto.CreateSubjectRequest, dto.UpdateSubjectRequest](
		base, service.CatalogService,
		func(s *subject.Subject) any { return dto.FromSubject(s) },
	)
}

// NewSheetHandler serves /sheets.
func NewSheetHandler(base *BaseHandler, service *sheet.Service) *CatalogHandler[*sheet.Sheet] {
	return newCatalogHandler[*sheet.Sheet, dto.CreateSheetRequest, dto.UpdateSheetRequest](
		base, service.CatalogService,
		func(sh *sheet.Sheet) any { return dto.FromSheet(sh) },
	)
}

// NewClassSubjectHandler serves /class-subjects.
func NewClassSubjectHandler(base *BaseHandler, service *classsubject.Service) *CatalogHandler[*classsubject.ClassSubject] {
	return newCatalogHandler[*classsubject.ClassSubject, dto.CreateClassSubjectRequest, dto.UpdateClassSubjectRequest](
		base, service.CatalogService,
		func(cs *classsubject.ClassSubject) any { return dto.FromClassSubject(cs) },
	)
}
