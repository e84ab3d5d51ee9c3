package serialization

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/lasersell/streamproto/contracts"
)

// union is a closed set of message variants keyed by wire tag. Unions are
// populated once at package init and never mutated afterwards, so lookups
// need no locking.
type union struct {
	name    string
	entries map[string]*entry
	tags    map[reflect.Type]string
}

// entry describes one registered variant.
type entry struct {
	tag string
	typ reflect.Type

	// tagAliases are legacy tags accepted on decode only.
	tagAliases []string
	// fieldAliases maps a required wire field to alternate keys that also
	// satisfy its presence check.
	fieldAliases map[string][]string
}

type registerOption func(*entry)

// withTagAlias accepts a legacy discriminator for the variant on decode.
func withTagAlias(alias string) registerOption {
	return func(e *entry) {
		e.tagAliases = append(e.tagAliases, alias)
	}
}

// withFieldAlias accepts a legacy key for one of the variant's fields.
func withFieldAlias(field string, aliases ...string) registerOption {
	return func(e *entry) {
		if e.fieldAliases == nil {
			e.fieldAliases = make(map[string][]string)
		}
		e.fieldAliases[field] = append(e.fieldAliases[field], aliases...)
	}
}

func newUnion(name string) *union {
	return &union{
		name:    name,
		entries: make(map[string]*entry),
		tags:    make(map[reflect.Type]string),
	}
}

// register adds a variant to the union. Registration happens at package init
// with a static table, so invalid registrations are programmer errors and
// panic.
func (u *union) register(tag string, prototype interface{}, opts ...registerOption) {
	t := reflect.TypeOf(prototype)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("serialization: %s variant %q must be a struct, got %v", u.name, tag, t.Kind()))
	}

	e := &entry{tag: tag, typ: t}
	for _, opt := range opts {
		opt(e)
	}

	for _, key := range append([]string{tag}, e.tagAliases...) {
		if _, exists := u.entries[key]; exists {
			panic(fmt.Sprintf("serialization: duplicate %s tag %q", u.name, key))
		}
		u.entries[key] = e
	}
	u.tags[t] = tag
}

// lookup resolves a wire tag (canonical or alias) to its variant entry.
func (u *union) lookup(tag string) (*entry, bool) {
	e, ok := u.entries[tag]
	return e, ok
}

// tagOf returns the canonical tag for a variant value.
func (u *union) tagOf(msg interface{}) (string, error) {
	t := reflect.TypeOf(msg)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	tag, ok := u.tags[t]
	if !ok {
		return "", fmt.Errorf("serialization: type %v is not part of the %s union", t, u.name)
	}
	return tag, nil
}

// listTags returns the canonical tags of the union in sorted order.
func (u *union) listTags() []string {
	tags := make([]string, 0, len(u.tags))
	for _, tag := range u.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

var (
	clientUnion = newUnion("client")
	serverUnion = newUnion("server")
)

func init() {
	clientUnion.register(contracts.TypePing, contracts.Ping{})
	clientUnion.register(contracts.TypeConfigure, contracts.Configure{},
		withFieldAlias("wallet_pubkeys", "wallet_pubkey"))
	clientUnion.register(contracts.TypeUpdateStrategy, contracts.UpdateStrategy{})
	clientUnion.register(contracts.TypeClosePosition, contracts.ClosePosition{})
	clientUnion.register(contracts.TypeRequestExitSignal, contracts.RequestExitSignal{},
		withTagAlias(contracts.TypeSellNow))

	serverUnion.register(contracts.TypeHelloOk, contracts.HelloOk{})
	serverUnion.register(contracts.TypePong, contracts.Pong{})
	serverUnion.register(contracts.TypeError, contracts.ErrorReply{})
	serverUnion.register(contracts.TypePnlUpdate, contracts.PnlUpdate{})
	serverUnion.register(contracts.TypeBalanceUpdate, contracts.BalanceUpdate{})
	serverUnion.register(contracts.TypePositionOpened, contracts.PositionOpened{})
	serverUnion.register(contracts.TypePositionClosed, contracts.PositionClosed{})
	serverUnion.register(contracts.TypeExitSignalWithTx, contracts.ExitSignalWithTx{})
}

// ClientTags returns the canonical tags of the client command union.
func ClientTags() []string {
	return clientUnion.listTags()
}

// ServerTags returns the canonical tags of the server event union.
func ServerTags() []string {
	return serverUnion.listTags()
}

// jsonFieldName extracts the wire name and omitempty flag from a struct
// field's json tag.
func jsonFieldName(f reflect.StructField) (name string, omitempty, ok bool) {
	if f.PkgPath != "" {
		return "", false, false // unexported
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, true
}
