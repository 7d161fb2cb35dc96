package validation

import (
	"testing"

	"github.com/lehigh-university-libraries/phototools/internal/models"
)

func TestStructRecord(t *testing.T) {
	valid := models.Record{
		ID:        "img_001",
		Tags:      []string{},
		Dimension: "1920x1080",
		UDate:     "2024-05-01",
		TDate:     "2024-05-01",
	}

	tests := []struct {
		name    string
		mutate  func(r *models.Record)
		wantErr bool
	}{
		{name: "valid record", mutate: func(r *models.Record) {}},
		{name: "unknown dimension is valid", mutate: func(r *models.Record) { r.Dimension = models.UnknownDimension }},
		{name: "missing id", mutate: func(r *models.Record) { r.ID = "" }, wantErr: true},
		{name: "bad dimension", mutate: func(r *models.Record) { r.Dimension = "wide" }, wantErr: true},
		{name: "bad tdate", mutate: func(r *models.Record) { r.TDate = "2024-13-40" }, wantErr: true},
		{name: "bad udate", mutate: func(r *models.Record) { r.UDate = "01/05/2024" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := Struct(r)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
