// internal/api/classification/service_test.go
package classification

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"matchpoint/internal/models"
)

func TestMatchTypes(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM match_type`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gender", "type"}).
			AddRow(1, models.GenderMale, models.MatchTypeSingle).
			AddRow(2, models.GenderMix, models.MatchTypeDuo))

	types, err := NewService(db).MatchTypes(context.Background())

	assert.NoError(t, err)
	assert.Len(t, types, 2)
	assert.Equal(t, models.GenderMix, types[1].Gender)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTiers_FilteredByMatchType(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM tier`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "level", "match_type_id"}).
			AddRow(5, "1부", 1, 2))

	tiers, err := NewService(db).Tiers(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, tiers, 1)
	assert.Equal(t, "1부", tiers[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
