package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStudentRequest_IgnoresCode(t *testing.T) {
	var req CreateStudentRequest
	body := `{"code":"26ZZZ","fullName":" Anan ","parentPhone":"0812345678","enrollDate":"2026-01-05"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	st := req.ToEntity()
	assert.Empty(t, st.Code)
	assert.Equal(t, "Anan", st.FullName)
	assert.Equal(t, "2026-01-05", FormatDate(st.EnrollDate))
}
