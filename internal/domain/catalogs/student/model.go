// Package student provides the Student catalog.
package student

import (
	"context"
	"strings"
	"time"
	"unicode"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
)

// ContactChannel is how the center reaches the parent.
type ContactChannel string

const (
	ChannelFacebook ContactChannel = "facebook"
	ChannelLine     ContactChannel = "line"
)

// ReferralSource is how the family heard about the center.
type ReferralSource string

const (
	ReferralWordOfMouth ReferralSource = "referral"
	ReferralFacebook    ReferralSource = "facebook"
	ReferralGoogle      ReferralSource = "google"
	ReferralFlyer       ReferralSource = "flyer"
	ReferralWalkIn      ReferralSource = "walkin"
)

// Student is an enrolled learner. Code (YY###) is allocated once, on create.
type Student struct {
	entity.Catalog

	Code           string         `db:"code" json:"code"`
	FullName       string         `db:"full_name" json:"fullName"`
	Nickname       string         `db:"nickname" json:"nickname"`
	GradeLevel     string         `db:"grade_level" json:"gradeLevel"`
	AcademicYear   string         `db:"academic_year" json:"academicYear"`
	SchoolName     string         `db:"school_name" json:"schoolName"`
	ParentPhone    string         `db:"parent_phone" json:"parentPhone"`
	ContactChannel ContactChannel `db:"contact_channel" json:"contactChannel"`
	EnrollDate     time.Time      `db:"enroll_date" json:"enrollDate"`
	ReferralSource ReferralSource `db:"referral_source" json:"referralSource"`
	Note           string         `db:"note" json:"note"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
}

// NewStudent creates an active student with defaults applied.
func NewStudent(fullName, parentPhone string) *Student {
	return &Student{
		Catalog:        entity.NewCatalog(),
		FullName:       fullName,
		ParentPhone:    parentPhone,
		ContactChannel: ChannelLine,
		ReferralSource: ReferralWordOfMouth,
		CreatedAt:      time.Now().UTC(),
	}
}

// Validate implements entity.Validatable interface.
func (s *Student) Validate(ctx context.Context) error {
	if err := entity.RequireText("fullName", s.FullName); err != nil {
		return err
	}
	if err := entity.RequireText("parentPhone", s.ParentPhone); err != nil {
		return err
	}
	if PhoneDigits(s.ParentPhone) == "" {
		return apperror.NewValidation("parent phone must contain digits").
			WithDetail("field", "parentPhone")
	}

	switch s.ContactChannel {
	case ChannelFacebook, ChannelLine:
	default:
		return apperror.NewValidation("invalid contact channel").
			WithDetail("field", "contactChannel").
			WithDetail("value", string(s.ContactChannel))
	}

	switch s.ReferralSource {
	case ReferralWordOfMouth, ReferralFacebook, ReferralGoogle, ReferralFlyer, ReferralWalkIn:
	default:
		return apperror.NewValidation("invalid referral source").
			WithDetail("field", "referralSource").
			WithDetail("value", string(s.ReferralSource))
	}

	return nil
}

// DisplayName joins code, nickname, full name and grade with " | ",
// skipping blanks. A student with none of them shows as "-".
func (s *Student) DisplayName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{s.Code, s.Nickname, s.FullName, s.GradeLevel} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " | ")
}

// PhoneDigits keeps only the digits of a phone number.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneMatches compares two phone numbers by digits only.
// "081-234-5678" matches "0812345678". Empty numbers never match.
func PhoneMatches(a, b string) bool {
	da := PhoneDigits(a)
	return da != "" && da == PhoneDigits(b)
}
