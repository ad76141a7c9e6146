package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/internal/config"
	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/core/allocator"
	"github.com/achsservicios2025/Distribuci-n-de-puestos-CC/pkg/core/roster"
)

func teamTable() roster.Table {
	return roster.Table{
		Headers: []string{"Piso", "Equipo", "Personas", "Mínimo"},
		Rows: [][]string{
			{"1", "Operaciones", "10", "4"},
			{"1", "Finanzas", "8", "2"},
		},
	}
}

func capacityTable() roster.Table {
	return roster.Table{
		Headers: []string{"Piso", "Capacidad"},
		Rows:    [][]string{{"1", "20"}},
	}
}

func TestDistribute_HappyPath(t *testing.T) {
	in := DistributeInputs{Teams: teamTable(), Capacities: capacityTable()}

	result, err := Distribute(in, config.Default(), zap.NewNop())

	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, allocator.DefaultVariantCount, result.Variants)
	assert.NotEmpty(t, result.Best.Rows)
	assert.Empty(t, result.Best.Deficits, "both teams fit the floor in full")
}

func TestDistribute_RosterErrorPropagates(t *testing.T) {
	in := DistributeInputs{
		Teams: roster.Table{Headers: []string{"Piso"}, Rows: [][]string{{"1"}}},
	}

	_, err := Distribute(in, config.Default(), zap.NewNop())

	var cfgErr *roster.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDistribute_EmptyRosterErrors(t *testing.T) {
	in := DistributeInputs{
		Teams: roster.Table{Headers: []string{"Piso", "Equipo", "Personas", "Mínimo"}},
	}

	_, err := Distribute(in, config.Default(), zap.NewNop())

	assert.ErrorContains(t, err, "empty")
}

func TestDistribute_IgnoreRulesSkipsRuleTable(t *testing.T) {
	cfg := config.Default()
	cfg.IgnoreRules = true

	in := DistributeInputs{
		Teams:      teamTable(),
		Capacities: capacityTable(),
		Rules: roster.Table{
			Headers: []string{"Criterio", "Valor"},
			Rows:    [][]string{{"Día completo Operaciones", "Lunes"}},
		},
	}

	result, err := Distribute(in, cfg, zap.NewNop())

	require.NoError(t, err)
	assert.Empty(t, result.Best.Audit.DayChoices)
	assert.Empty(t, result.Best.Audit.DroppedRules)
	assert.True(t, result.Options.IgnoreRules)
}

func TestDistribute_RulesFlowIntoAudit(t *testing.T) {
	in := DistributeInputs{
		Teams:      teamTable(),
		Capacities: capacityTable(),
		Rules: roster.Table{
			Headers: []string{"Criterio", "Valor"},
			Rows: [][]string{
				{"Día completo Operaciones", "Lunes o Miércoles"},
				{"Día completo Finanzas", "Domingo"},
			},
		},
	}

	result, err := Distribute(in, config.Default(), zap.NewNop())

	require.NoError(t, err)
	require.Len(t, result.Best.Audit.DayChoices, 1)
	assert.Equal(t, "Operaciones", result.Best.Audit.DayChoices[0].Team)
	require.Len(t, result.Best.Audit.DroppedRules, 1)
	assert.Equal(t, "finanzas", result.Best.Audit.DroppedRules[0].Team)
}

func TestDistribute_DeterministicForFixedSeed(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.VariantCount = 4

	in := DistributeInputs{Teams: teamTable(), Capacities: capacityTable()}

	first, err := Distribute(in, cfg, zap.NewNop())
	require.NoError(t, err)
	second, err := Distribute(in, cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, first.Best, second.Best)
}
