package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/equity/internal/model"
)

func TestService_Lookup(t *testing.T) {
	svc := NewService(DefaultChart())

	a, ok := svc.Get("caja")
	require.True(t, ok)
	assert.Equal(t, "1.1.01.001", a.Code)
	assert.True(t, svc.Exists("reserva_legal"))
	assert.False(t, svc.Exists("nope"))

	a, ok = svc.ByCode("3.3.02.001")
	require.True(t, ok)
	assert.Equal(t, "resultado_ejercicio", a.ID)
	_, ok = svc.ByCode("9.9")
	assert.False(t, ok)

	for _, acct := range svc.ByKind(model.KindIncome) {
		assert.Equal(t, model.KindIncome, acct.Kind)
	}
	assert.Len(t, svc.ByKind(model.KindIncome), 3)
	assert.Len(t, svc.All(), len(DefaultChart()))
}

func TestService_ByIDIsCopy(t *testing.T) {
	svc := NewService(DefaultChart())
	m := svc.ByID()
	delete(m, "caja")
	assert.True(t, svc.Exists("caja"))
}

func TestService_SaveLoad(t *testing.T) {
	root := t.TempDir()
	svc := NewService(DefaultChart())
	require.NoError(t, svc.Save(root))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, svc.All(), loaded.All())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
