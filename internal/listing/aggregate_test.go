package listing

import (
	"testing"

	"vintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	vinA := "1HGCM82633A004352"
	vinB := "5YJSA1E26FF101307"

	sets := [][]models.Listing{
		{
			{ID: "a1", VIN: vinA, Date: "2024-03-14"},
			{ID: "a2", VIN: vinA, Date: "2024-03-15"},
		},
		{
			{ID: "b1", VIN: vinB, Date: "2024-03-15"},
			{ID: "b2", VIN: vinB, Date: "2024-01-02"},
		},
	}

	t.Run("DateDescending", func(t *testing.T) {
		merged := Aggregate(sets, SortByDateDesc)
		require.Len(t, merged, 4)

		assert.Equal(t, "2024-03-15", merged[0].Date)
		assert.Equal(t, "2024-03-15", merged[1].Date)
		assert.Equal(t, "2024-03-14", merged[2].Date)
		assert.Equal(t, "2024-01-02", merged[3].Date)

		// Equal dates keep their input order
		assert.Equal(t, "a2", merged[0].ID)
		assert.Equal(t, "b1", merged[1].ID)
	})

	t.Run("VINThenDate", func(t *testing.T) {
		merged := Aggregate(sets, SortByVINThenDate)
		require.Len(t, merged, 4)

		assert.Equal(t, []string{"a2", "a1", "b1", "b2"}, ids(merged))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, Aggregate(nil, SortByDateDesc))
		assert.Empty(t, Aggregate([][]models.Listing{{}, {}}, SortByDateDesc))
	})

	t.Run("UnparseableDatesSortLast", func(t *testing.T) {
		mixed := [][]models.Listing{
			{
				{ID: "good", VIN: vinA, Date: "2024-03-15"},
				{ID: "bad", VIN: vinA, Date: "whenever"},
			},
		}
		merged := Aggregate(mixed, SortByDateDesc)
		assert.Equal(t, []string{"good", "bad"}, ids(merged))
	})
}

func ids(listings []models.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}
