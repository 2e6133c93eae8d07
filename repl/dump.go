package repl

import (
	"encoding/base64"
	"fmt"
	"sort"

	"nestdb"
	"nestdb/codec"
	"nestdb/config"
)

func (s *Session) dump(input []string) error {
	if len(input) != 1 {
		return badInput("DUMP does not accept any parameters")
	}

	snap := s.db.Snapshot()
	switch s.opts.DumpFormat {
	case config.DumpJSON:
		c := codec.NewJSONCodec[nestdb.Snapshot]()
		raw, err := c.Encode(snap)
		if err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		fmt.Fprintln(s.out, string(raw))
	case config.DumpBSON:
		c := codec.NewBSONCodec[nestdb.Snapshot]()
		raw, err := c.Encode(snap)
		if err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		fmt.Fprintln(s.out, base64.StdEncoding.EncodeToString(raw))
	default:
		s.dumpText(snap)
	}
	return nil
}

// dumpText prints the snapshot in the classic listing layout, everything
// sorted so transcripts are reproducible.
func (s *Session) dumpText(snap nestdb.Snapshot) {
	fmt.Fprintln(s.out, "database entries")
	for _, name := range sortedKeys(snap.Records) {
		fmt.Fprintf(s.out, "\t%s=%s\n", name, snap.Records[name])
	}

	fmt.Fprintln(s.out, "index entries")
	for _, value := range sortedKeys(snap.Index) {
		fmt.Fprintf(s.out, "\t%s is the value for:\n", value)
		for _, name := range snap.Index[value] {
			fmt.Fprintf(s.out, "\t\t%s\n", name)
		}
	}

	fmt.Fprintf(s.out, "currentTxId = %d\n", snap.CurrentTx)
	fmt.Fprintln(s.out, "pending transactions")
	for _, lv := range snap.Levels {
		fmt.Fprintf(s.out, "\ttransaction #%d contains:\n", lv.ID)
		for _, ent := range lv.Entries {
			fmt.Fprintf(s.out, "\t\t%s ==>> old:%s, new:%s\n",
				ent.Name, orNull(ent.Old), orNull(ent.New))
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orNull(v *string) string {
	if v == nil {
		return "NULL"
	}
	return *v
}
