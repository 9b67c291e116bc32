package dto_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"huddle/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: "room-1", Table: "meetings"},
			wantWhere: "meetings.room_id = :room_id",
			wantArgs:  map[string]any{"room_id": "room-1"},
		},
		{
			name:      "not eq",
			filter:    dto.Filter{Field: "state", Operator: dto.FilterOperatorNotEq, Value: "ended"},
			wantWhere: "state != :state",
			wantArgs:  map[string]any{"state": "ended"},
		},
		{
			name:      "less eq",
			filter:    dto.Filter{Field: "start_date", ArgName: "until", Operator: dto.FilterOperatorLessEq, Value: "2024-01-01"},
			wantWhere: "start_date <= :until",
			wantArgs:  map[string]any{"until": "2024-01-01"},
		},
		{
			name:      "in with slice",
			filter:    dto.Filter{Field: "state", Operator: dto.FilterOperatorIn, Value: []string{"created", "in_progress"}},
			wantWhere: "state IN (:state_0, :state_1)",
			wantArgs:  map[string]any{"state_0": "created", "state_1": "in_progress"},
		},
		{
			name:      "unknown operator yields empty clause",
			filter:    dto.Filter{Field: "state", Operator: "between", Value: "x"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if strings.TrimSpace(where) != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, strings.TrimSpace(where))
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for k, v := range tt.wantArgs {
				if args[k] != v {
					t.Errorf("expected arg %s=%v, got %v", k, v, args[k])
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: "room-1"},
			dto.Filter{Field: "state", Operator: dto.FilterOperatorIn, Value: []string{"created", "in_progress"}},
		},
	}

	where, args := group.GetWhereClause()

	if !strings.Contains(where, "room_id = :room_id") || !strings.Contains(where, " AND ") {
		t.Errorf("unexpected where clause %q", where)
	}

	if len(args) != 3 {
		t.Errorf("expected 3 args, got %d", len(args))
	}
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()
	if where != "" || len(args) != 0 {
		t.Errorf("expected empty clause, got %q with %v", where, args)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		useDefaults bool
		expected    dto.QueryParams
	}{
		{
			name:        "all params present",
			url:         "/v1/meetings?page=2&limit=25&sort_by=start_date&sort_dir=asc",
			useDefaults: true,
			expected:    dto.QueryParams{Page: 2, Limit: 25, SortBy: "start_date", SortDir: "ASC"},
		},
		{
			name:        "defaults applied",
			url:         "/v1/meetings",
			useDefaults: true,
			expected:    dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:        "no defaults",
			url:         "/v1/meetings",
			useDefaults: false,
			expected:    dto.QueryParams{},
		},
		{
			name:        "invalid values ignored",
			url:         "/v1/meetings?page=-1&limit=abc&sort_dir=sideways",
			useDefaults: true,
			expected:    dto.QueryParams{Page: 1, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)

			q := dto.QueryParams{}
			q.FromRequest(r, tt.useDefaults)

			if q != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, q)
			}
		})
	}
}
