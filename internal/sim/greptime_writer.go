package sim

import (
	"context"
	"log"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"landersim/internal/descent"
)

// GreptimeDBWriter writes outcome rows to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client  *greptime.Client
	db      string
	table   string
	mission string
}

// NewGreptimeDBWriter creates a GreptimeDB writer and auto-creates the
// runs table if needed. mission tags every row so batches from different
// scenarios can share one table.
func NewGreptimeDBWriter(endpoint, database, tableName, mission string) (*GreptimeDBWriter, error) {
	if tableName == "" {
		tableName = "lander_runs"
	}
	client, err := greptime.NewClient(greptime.NewConfig(endpoint).WithDatabase(database))
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client:  client,
		db:      database,
		table:   tableName,
		mission: mission,
	}, nil
}

// Write inserts a single outcome row.
func (w *GreptimeDBWriter) Write(o descent.Outcome) error {
	return w.WriteBatch([]descent.Outcome{o})
}

// WriteBatch inserts multiple outcome rows.
func (w *GreptimeDBWriter) WriteBatch(outcomes []descent.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	ctx := ingesterContext.New(context.Background())

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("mission", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("landed", types.BOOLEAN); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("safe", types.BOOLEAN); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("landing_speed_mps", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("fuel_left_kg", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("time_s", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("reason", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, o := range outcomes {
		speed := 0.0
		if o.LandingSpeed != nil {
			speed = *o.LandingSpeed
		}
		if err := tbl.AddRow(w.mission, o.RunID, o.Landed, o.Safe,
			speed, o.FuelLeftKg, o.TimeS, string(o.Reason), o.Timestamp); err != nil {
			return err
		}
	}

	resp, err := w.client.Write(ctx, tbl)
	if err != nil {
		log.Printf("[GreptimeDBWriter] write failed: %v", err)
		return err
	}
	log.Printf("[GreptimeDBWriter] wrote %d rows", resp.GetAffectedRows().GetValue())
	return nil
}
