package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/fleet/internal/database"
)

func TestFilter(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	tests := []struct {
		name       string
		build      func(f *database.Filter)
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "Empty",
			build:      func(*database.Filter) {},
			wantClause: "",
			wantArgs:   nil,
		},
		{
			name: "SingleCondition",
			build: func(f *database.Filter) {
				f.Where("e.truck_id = ?", int64(4))
			},
			wantClause: " WHERE e.truck_id = $1",
			wantArgs:   []any{int64(4)},
		},
		{
			name: "RangeAndEquality",
			build: func(f *database.Filter) {
				f.Where("e.truck_id = ?", int64(4)).
					Where("e.date >= ? AND e.date < ?", start, end)
			},
			wantClause: " WHERE e.truck_id = $1 AND e.date >= $2 AND e.date < $3",
			wantArgs:   []any{int64(4), start, end},
		},
		{
			name: "ConditionWithoutArgs",
			build: func(f *database.Filter) {
				f.Where("i.order_id IS NOT NULL").Where("i.client_id = ?", int64(9))
			},
			wantClause: " WHERE i.order_id IS NOT NULL AND i.client_id = $1",
			wantArgs:   []any{int64(9)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f database.Filter
			tt.build(&f)

			assert.Equal(t, tt.wantClause, f.Clause())
			assert.Equal(t, tt.wantArgs, f.Args())
		})
	}
}

func TestFilter_Arg(t *testing.T) {
	var f database.Filter
	f.Where("t.id = ?", int64(1))

	assert.Equal(t, "$2", f.Arg(int64(50)))
	assert.Len(t, f.Args(), 2)
}
