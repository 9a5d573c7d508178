package dnd5e

import (
	"fmt"
	"log"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"golang.org/x/sync/errgroup"
)

const (
	// SpellActionPointCost is what every imported spell costs to cast
	SpellActionPointCost = 3000

	// shortRangeFeet is the longest range still counted as Short
	shortRangeFeet = 30

	defaultConcurrency = 4
)

var feetPattern = regexp.MustCompile(`(\d+)\s*(?:feet|foot|ft)`)

// healingWords mark a spell as restoring hit points
var healingWords = []string{"heal", "cure", "regenerat", "revivify", "restoration"}

// Importer turns SRD spells into ability definitions
type Importer struct {
	client      Client
	scripts     map[string]string
	concurrency int
}

type ImporterConfig struct {
	Client Client
	// Scripts maps spell keys onto the script that implements them
	Scripts map[string]string
	// Concurrency bounds the spell lookups of ImportClass
	Concurrency int
}

func NewImporter(cfg *ImporterConfig) *Importer {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Client == nil {
		panic("client is required")
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Importer{
		client:      cfg.Client,
		scripts:     cfg.Scripts,
		concurrency: concurrency,
	}
}

// ImportSpell fetches one spell and maps it onto a definition
func (i *Importer) ImportSpell(key string) (*ability.Definition, error) {
	spell, err := i.client.GetSpell(key)
	if err != nil {
		return nil, err
	}
	return i.Definition(spell)
}

// ImportClass maps every spell of a class. Spells that fail to load are
// logged and left out. The result is ordered by spell level, then name.
func (i *Importer) ImportClass(classKey string) ([]*ability.Definition, error) {
	refs, err := i.client.ListSpellsByClass(classKey)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		defs []*ability.Definition
	)

	g := new(errgroup.Group)
	g.SetLimit(i.concurrency)
	for _, ref := range refs {
		g.Go(func() error {
			def, err := i.ImportSpell(ref.Key)
			if err != nil {
				log.Printf("Importer: skipping spell %s: %v", ref.Key, err)
				return nil
			}
			mu.Lock()
			defs = append(defs, def)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(defs, func(a, b *ability.Definition) int {
		if a.SpellLevel != b.SpellLevel {
			return a.SpellLevel - b.SpellLevel
		}
		return strings.Compare(a.ID, b.ID)
	})

	log.Printf("Importer: imported %d of %d %s spells", len(defs), len(refs), classKey)
	return defs, nil
}

// Definition maps a spell onto an ability definition
func (i *Importer) Definition(spell *Spell) (*ability.Definition, error) {
	if spell == nil {
		return nil, rpgerr.InvalidArgument("spell cannot be nil")
	}
	if spell.Name == "" {
		return nil, rpgerr.Validationf("spell %s has no name", spell.Key)
	}

	def := &ability.Definition{
		ID:              spell.Name,
		Name:            spell.Name,
		Description:     describe(spell),
		Kind:            ability.KindSpell,
		Script:          i.scripts[spell.Key],
		Activateable:    true,
		ActionPointCost: SpellActionPointCost,
		ActionType:      actionType(spell).String(),
		GroupType:       ability.GroupSingle.String(),
		AIPower:         10 * (spell.Level + 1),
		SpellLevel:      spell.Level,
	}
	if spell.AreaType != "" {
		def.GroupType = ability.GroupMultiple.String()
	}
	if r, ok := rangeType(spell.Range); ok {
		def.RangeType = r.String()
	} else if spell.Range != "" {
		log.Printf("Importer: spell %s has unrecognized range %q", spell.Key, spell.Range)
	}

	return def, nil
}

func actionType(spell *Spell) ability.ActionType {
	switch {
	case spell.HasDamage:
		return ability.ActionDamage
	case isHealing(spell.Key):
		return ability.ActionHeal
	case spell.SaveType != "":
		return ability.ActionDebuff
	default:
		return ability.ActionBuff
	}
}

func isHealing(key string) bool {
	key = strings.ToLower(key)
	for _, w := range healingWords {
		if strings.Contains(key, w) {
			return true
		}
	}
	return false
}

// rangeType reads SRD range text such as "Self (15-foot cone)", "Touch" or
// "120 feet"
func rangeType(text string) (ability.RangeType, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case lower == "":
		return 0, false
	case strings.HasPrefix(lower, "self"):
		return ability.RangePersonal, true
	case lower == "touch":
		return ability.RangeTouch, true
	case lower == "sight", lower == "unlimited", lower == "special", strings.Contains(lower, "mile"):
		return ability.RangeLong, true
	}

	m := feetPattern.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	feet, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if feet <= shortRangeFeet {
		return ability.RangeShort, true
	}
	return ability.RangeLong, true
}

func describe(spell *Spell) string {
	var b strings.Builder
	if spell.Level == 0 {
		b.WriteString("Cantrip")
	} else {
		fmt.Fprintf(&b, "Level %d spell", spell.Level)
	}
	if spell.School != "" {
		fmt.Fprintf(&b, " (%s)", spell.School)
	}
	if spell.Range != "" {
		fmt.Fprintf(&b, ". Range: %s", spell.Range)
	}
	if spell.Duration != "" {
		fmt.Fprintf(&b, ". Duration: %s", spell.Duration)
	}
	if spell.Concentration {
		b.WriteString(", concentration")
	}
	return b.String()
}
