package catalog

import (
	"embed"
	"io/fs"

	"github.com/bentancorlucia/admin-edificios/migration"
)

// DefaultServiceType is a service type seeded into every store by change-set 2
type DefaultServiceType struct {
	Code  string
	Name  string
	Color string
}

var DefaultServiceTypes = []DefaultServiceType{
	{"ELECTRICISTA", "Electricista", "default"},
	{"PLOMERO", "Plomero", "secondary"},
	{"SANITARIO", "Sanitario", "secondary"},
	{"CERRAJERO", "Cerrajero", "default"},
	{"PINTOR", "Pintor", "outline"},
	{"CARPINTERO", "Carpintero", "outline"},
	{"ALBANIL", "Albañil", "outline"},
	{"JARDINERO", "Jardinero", "secondary"},
	{"LIMPIEZA", "Limpieza", "secondary"},
	{"SEGURIDAD", "Seguridad", "destructive"},
	{"FUMIGACION", "Fumigación", "default"},
	{"ASCENSOR", "Ascensor", "default"},
	{"VIDRIERIA", "Vidriería", "outline"},
	{"HERRERIA", "Herrería", "outline"},
	{"AIRE_ACONDICIONADO", "Aire Acondicionado", "default"},
	{"GAS", "Gas", "destructive"},
	{"UTE", "UTE (Electricidad)", "destructive"},
	{"OSE", "OSE (Agua)", "secondary"},
	{"TARIFA_SANEAMIENTO", "Tarifa de Saneamiento", "secondary"},
	{"OTRO", "Otro", "outline"},
}

//go:embed changesets/*.sql
var published embed.FS

// ChangeSets is the full ledger of the store, oldest first. Published
// change-sets are frozen SQL; catalog growth is appended as a new file
// rendered from ColumnStatements and IndexStatements of its version.
func ChangeSets() []*migration.ChangeSet {
	dir, err := fs.Sub(published, "changesets")
	if err != nil {
		panic(err)
	}
	sets, err := migration.LoadChangeSets(dir)
	if err != nil {
		panic(err)
	}
	return sets
}

func init() {
	for _, cs := range ChangeSets() {
		migration.RegisterChangeSet(cs)
	}
}
