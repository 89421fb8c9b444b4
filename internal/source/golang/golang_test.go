package golang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/valuegen/internal/model"
)

const fixture = "../../../test/testdata/fixtures/golang/contacts"

func TestLoad(t *testing.T) {
	decls, err := Load(context.Background(), fixture, ".")
	require.NoError(t, err)

	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	require.Equal(t, []string{"Contact", "Empty", "Point"}, names)

	contact := decls[0]
	assert.Equal(t, model.DeclInterface, contact.Kind)
	assert.Equal(t, "Contact is one address book entry.", contact.Doc)
	assert.True(t, contact.HasAnnotation(MarkerAnnotation))
	assert.Equal(t, "github.com/cmmoran/valuegen/test/testdata/fixtures/golang/contacts", contact.Package)
	assert.Contains(t, contact.Imports, "github.com/cmmoran/valuegen/pkg/value")
	assert.Nil(t, contact.Enclosing)
	require.Len(t, contact.Members, 8)

	byName := map[string]*model.Member{}
	for _, m := range contact.Members {
		byName[m.Name] = m
	}

	email := byName["Email"]
	assert.Equal(t, "string", email.Returns.Name)
	assert.Equal(t, model.VisibilityPublic, email.Visibility)
	assert.Empty(t, email.Params)

	nick := byName["Nickname"]
	assert.True(t, nick.HasAnnotation(NullableAnnotation))
	assert.True(t, nick.Returns.IsPtr)
	assert.Equal(t, "Nickname is optional free text.", nick.Doc)

	phone := byName["Phone"].Returns
	assert.Equal(t, "value.Optional", phone.Name)
	assert.Equal(t, "github.com/cmmoran/valuegen/pkg/value", phone.PkgPath)

	assert.Equal(t, 1, byName["Tags"].Returns.Dims)
	scores := byName["Scores"].Returns
	assert.Equal(t, "map", scores.Name)
	require.Len(t, scores.Args, 2)
	assert.Equal(t, "int", scores.Args[1].Name)
	assert.Equal(t, "time", byName["Added"].Returns.PkgPath)

	factory := byName["New"]
	require.Len(t, factory.Params, 7)
	assert.Equal(t, "email", factory.Params[0].Name)
	assert.Equal(t, "Contact", factory.Returns.SimpleName())

	point := decls[2]
	require.Len(t, point.Members, 2)
	assert.Equal(t, "float64", point.Members[0].Returns.Name)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(context.Background(), fixture, "./does-not-exist")
	require.ErrorIs(t, err, ErrLoad)
}
