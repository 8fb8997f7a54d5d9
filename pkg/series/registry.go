package series

import (
	"fmt"
	"sort"
	"sync"

	"github.com/helviojunior/brparser/pkg/brdoc"
	"github.com/helviojunior/brparser/pkg/phone"
	"github.com/helviojunior/brparser/pkg/text"
)

var (
	regMutex sync.RWMutex
	registry = map[string]Expr{}
)

// Register adds an expression under its name. Registering the same name
// twice is an error.
func Register(e Expr) error {
	regMutex.Lock()
	defer regMutex.Unlock()

	if _, ok := registry[e.name]; ok {
		return fmt.Errorf("expression %q already registered", e.name)
	}
	registry[e.name] = e
	return nil
}

// Lookup resolves a registered expression by name.
func Lookup(name string) (Expr, bool) {
	regMutex.RLock()
	defer regMutex.RUnlock()

	e, ok := registry[name]
	return e, ok
}

// Names returns the registered expression names, sorted.
func Names() []string {
	regMutex.RLock()
	defer regMutex.RUnlock()

	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func mustRegister(e Expr) {
	if err := Register(e); err != nil {
		panic(err)
	}
}

// The default expression set, registered under the names the original
// dataframe plugin exposed.
func init() {
	mustRegister(Predicate("validate_cpf", brdoc.IsCPF))
	mustRegister(Predicate("validate_cnpj", brdoc.IsCNPJ))
	mustRegister(Predicate("validate_cpf_cnpj", brdoc.IsValid))
	mustRegister(Classifier("is_cpf_or_cnpj", func(s string) (string, bool) {
		k := brdoc.Classify(s)
		return k.String(), k != brdoc.KindNone
	}))
	// Formatting never touches input that fails the checksum
	mustRegister(Transform("format_cpf", func(s string) string {
		if !brdoc.IsCPF(s) {
			return s
		}
		return brdoc.FormatCPF(s)
	}))
	mustRegister(Transform("format_cnpj", func(s string) string {
		if !brdoc.IsCNPJ(s) {
			return s
		}
		return brdoc.FormatCNPJ(s)
	}))
	mustRegister(Transform("format_cpf_cnpj", brdoc.Format))

	mustRegister(Predicate("validate_phone", phone.IsValid))
	mustRegister(Predicate("validate_phone_flexible", phone.IsValidFlexible))
	mustRegister(Transform("format_phone", phone.Format))

	mustRegister(Transform("remove_accents", text.RemoveAccents))
	mustRegister(Transform("title_case", text.TitleCase))
	mustRegister(Transform("pig_latinnify", text.PigLatin))
}
