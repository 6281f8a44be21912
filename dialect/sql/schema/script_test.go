package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectorApplyScript(t *testing.T) {
	ctx := context.Background()

	t.Run("Applied", func(t *testing.T) {
		in := openFixture(t)
		require.NoError(t, in.ApplyScript(ctx, `
-- Order priorities.
CREATE TABLE Priorities (PriorityID INTEGER PRIMARY KEY, Name TEXT NOT NULL);
INSERT INTO Priorities (PriorityID, Name) VALUES (1, 'Low; or none');
ALTER TABLE Orders ADD COLUMN PriorityID INTEGER;
`))
		tables, err := in.Tables(ctx)
		require.NoError(t, err)
		byName := make(map[string]*Table)
		for _, tb := range tables {
			byName[tb.Name] = tb
		}
		assert.Contains(t, byName, "Priorities")
		require.Contains(t, byName, "Orders")
		assert.NotNil(t, byName["Orders"].Column("PriorityID"))

		var name string
		require.NoError(t, in.drv.DB().QueryRowContext(ctx, "SELECT Name FROM Priorities").Scan(&name))
		assert.Equal(t, "Low; or none", name)
	})
	t.Run("RolledBack", func(t *testing.T) {
		in := openFixture(t)
		err := in.ApplyScript(ctx, `
CREATE TABLE Priorities (PriorityID INTEGER PRIMARY KEY);
INSERT INTO Missing VALUES (1);
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "script statement 2")
		tables, err := in.Tables(ctx)
		require.NoError(t, err)
		for _, tb := range tables {
			assert.NotEqual(t, "Priorities", tb.Name)
		}
	})
	t.Run("Empty", func(t *testing.T) {
		in := openFixture(t)
		assert.NoError(t, in.ApplyScript(ctx, "-- nothing to do\n"))
	})
}
