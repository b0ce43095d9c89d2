package resources

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/biotext/bioground/internal/domain/agent"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// ParseGroundingMap reads the curated grounding map from r.  Row layout:
//
//	text, ns1, id1, ns2, id2, ...
//
// Rows are ragged; empty cells are discarded before pairing.  A row whose
// namespace and identifier counts disagree, or that names an unknown
// namespace, is skipped with a warning — one bad row never poisons the map.
// A row with a text but no pairs becomes the explicit no-grounding sentinel.
func ParseGroundingMap(r io.Reader, log logging.Logger) (grounding.GroundingMap, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	gm := grounding.GroundingMap{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeGroundingMapParse,
				"failed to parse grounding map CSV")
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		text := row[0]

		var keys, values []string
		for i := 1; i < len(row); i += 2 {
			if row[i] != "" {
				keys = append(keys, row[i])
			}
		}
		for i := 2; i < len(row); i += 2 {
			if row[i] != "" {
				values = append(values, row[i])
			}
		}

		if len(keys) != len(values) {
			log.Warn("skipped grounding map entry with mismatched columns",
				logging.String("text", text),
				logging.Int("keys", len(keys)), logging.Int("values", len(values)))
			continue
		}
		if len(keys) == 0 {
			gm[text] = nil
			continue
		}

		refs := grounding.DBRefs{grounding.NamespaceText: text}
		bad := false
		for i, k := range keys {
			ns, ok := grounding.ParseNamespace(k)
			if !ok || ns == grounding.NamespaceText {
				log.Warn("skipped grounding map entry with invalid namespace",
					logging.String("text", text), logging.String("namespace", k))
				bad = true
				break
			}
			refs[ns] = values[i]
		}
		if bad {
			continue
		}
		gm[text] = refs
	}
	return gm, nil
}

// LoadGroundingMap reads the curated grounding map from path and merges the
// optional companion files:
//
//   - ignorePath: one text per line; each becomes the no-grounding sentinel;
//   - misgroundingPath: same CSV layout as the map; every listed text is
//     known to be systematically misgrounded and becomes the sentinel too.
//
// Companion paths may be empty.  Sentinels always win over positive entries.
func LoadGroundingMap(path, ignorePath, misgroundingPath string, log logging.Logger) (grounding.GroundingMap, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGroundingMapParse,
			"failed to open grounding map").WithDetail(path)
	}
	defer f.Close()

	gm, err := ParseGroundingMap(f, log)
	if err != nil {
		return nil, err
	}

	if ignorePath != "" {
		ignores, err := loadIgnoreList(ignorePath)
		if err != nil {
			return nil, err
		}
		for _, text := range ignores {
			gm[text] = nil
		}
	}

	if misgroundingPath != "" {
		mf, err := os.Open(misgroundingPath)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeGroundingMapParse,
				"failed to open misgrounding map").WithDetail(misgroundingPath)
		}
		defer mf.Close()
		mis, err := ParseGroundingMap(mf, log)
		if err != nil {
			return nil, err
		}
		for text := range mis {
			gm[text] = nil
		}
	}

	log.Info("grounding map loaded",
		logging.String("path", path), logging.Int("entries", len(gm)))
	return gm, nil
}

// loadIgnoreList reads one text per line, skipping blanks.
func loadIgnoreList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGroundingMapParse,
			"failed to open ignore list").WithDetail(path)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		text := strings.TrimRight(sc.Text(), "\r")
		if text != "" {
			out = append(out, text)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGroundingMapParse,
			"failed to read ignore list").WithDetail(path)
	}
	return out, nil
}

// LoadAgentMap reads the prebuilt canonical-agent JSON:
//
//	{ "<text>": { "name": "...", "db_refs": { "<NS>": "<id>", ... } }, ... }
//
// Entries carrying an invalid namespace fail the whole load; the agent map is
// small, hand-curated, and a bad key means the file is broken.
func LoadAgentMap(path string) (map[string]*agent.Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeAgentMapParse,
			"failed to read agent map").WithDetail(path)
	}

	raw := map[string]*agent.Agent{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeAgentMapParse,
			"failed to parse agent map JSON").WithDetail(path)
	}

	for text, a := range raw {
		if a == nil {
			return nil, apperrors.New(apperrors.ErrCodeAgentMapParse,
				"agent map entry is null").WithDetail(text)
		}
		for ns := range a.DBRefs {
			if !ns.Valid() {
				return nil, apperrors.Newf(apperrors.ErrCodeAgentMapParse,
					"agent map entry %q uses invalid namespace %q", text, string(ns))
			}
		}
	}
	return raw, nil
}

//Personal.AI order the ending
