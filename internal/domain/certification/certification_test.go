package certification

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

func TestValidateAllowsMissingIssueDate(t *testing.T) {
	c := &Certification{ProfileID: uuid.New(), Name: "CKA", Issuer: "CNCF"}

	assert.NoError(t, c.Validate())
}

func TestValidateRejectsBadCredentialURL(t *testing.T) {
	c := &Certification{ProfileID: uuid.New(), Name: "CKA", Issuer: "CNCF", CredentialURL: "not a url"}

	var fields apperror.FieldErrors
	require.ErrorAs(t, c.Validate(), &fields)
	assert.Contains(t, fields, "credential_url")
}

func TestSortDefaultPutsUndatedFirstThenNewest(t *testing.T) {
	older := civil.Date{Year: 2021, Month: 3, Day: 1}
	newer := civil.Date{Year: 2023, Month: 5, Day: 1}
	items := []*Certification{
		{Name: "old", IssueDate: &older},
		{Name: "undated"},
		{Name: "new", IssueDate: &newer},
	}

	SortDefault(items)

	names := make([]string, len(items))
	for i, c := range items {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"undated", "new", "old"}, names)
}
