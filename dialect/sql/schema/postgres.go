package schema

import (
	"context"

	"github.com/syssam/ewl/dialect"
	"github.com/syssam/ewl/dialect/sql"
)

const (
	sequencesQuery = "SELECT sequence_name FROM information_schema.sequences " +
		"WHERE sequence_schema = current_schema() ORDER BY sequence_name"
	proceduresQuery = "SELECT specific_name, routine_name FROM information_schema.routines " +
		"WHERE routine_schema = current_schema() AND routine_type = 'PROCEDURE' ORDER BY routine_name, specific_name"
	parametersQuery = "SELECT specific_name, COALESCE(parameter_name, ''), data_type, COALESCE(parameter_mode, 'IN') " +
		"FROM information_schema.parameters WHERE specific_schema = current_schema() ORDER BY specific_name, ordinal_position"
)

// Sequences returns the sequences of the current Postgres schema ordered by
// name. Other dialects have none.
func (i *Inspector) Sequences(ctx context.Context) ([]*Sequence, error) {
	return sequences(ctx, i.drv)
}

func sequences(ctx context.Context, ex sql.Executor) ([]*Sequence, error) {
	if ex.Dialect() != dialect.Postgres {
		return nil, nil
	}
	var seqs []*Sequence
	err := sql.Query(ctx, ex, sequencesQuery, nil, func(s sql.ColumnScanner) error {
		seq := &Sequence{}
		if err := s.Scan(&seq.Name); err != nil {
			return err
		}
		seqs = append(seqs, seq)
		return nil
	})
	return seqs, err
}

// Procedures returns the stored procedures of the current Postgres schema
// ordered by name. Other dialects have none.
func (i *Inspector) Procedures(ctx context.Context) ([]*Procedure, error) {
	return procedures(ctx, i.drv)
}

func procedures(ctx context.Context, ex sql.Executor) ([]*Procedure, error) {
	if ex.Dialect() != dialect.Postgres {
		return nil, nil
	}
	var (
		procs      []*Procedure
		bySpecific = make(map[string]*Procedure)
	)
	err := sql.Query(ctx, ex, proceduresQuery, nil, func(s sql.ColumnScanner) error {
		var specific string
		p := &Procedure{}
		if err := s.Scan(&specific, &p.Name); err != nil {
			return err
		}
		bySpecific[specific] = p
		procs = append(procs, p)
		return nil
	})
	if err != nil || len(procs) == 0 {
		return procs, err
	}
	err = sql.Query(ctx, ex, parametersQuery, nil, func(s sql.ColumnScanner) error {
		var specific string
		param := &ProcedureParam{}
		if err := s.Scan(&specific, &param.Name, &param.DatabaseType, &param.Mode); err != nil {
			return err
		}
		// Parameters of functions share the view with procedures.
		p, ok := bySpecific[specific]
		if !ok {
			return nil
		}
		param.Type = typeFromName(param.DatabaseType)
		p.Params = append(p.Params, param)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return procs, nil
}
