package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

// Client is the slice of the D&D 5e SRD API the importer needs
type Client interface {
	GetSpell(key string) (*Spell, error)
	ListSpellsByClass(classKey string) ([]*SpellReference, error)
}
