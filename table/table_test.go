// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of CLAUSEFEAT.
//
//  CLAUSEFEAT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  CLAUSEFEAT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with CLAUSEFEAT.  If not, see <https://www.gnu.org/licenses/>.

package table

import (
	"bytes"
	"clausefeat/engine"
	"clausefeat/morph"
	"clausefeat/results"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/data/input.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	f, err = FormatFromPath("rows.tsv")
	require.NoError(t, err)
	assert.Equal(t, FormatTSV, f)
	f, err = FormatFromPath("rows.jsonl")
	require.NoError(t, err)
	assert.Equal(t, FormatJSONL, f)
	_, err = FormatFromPath("rows.xlsx")
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	data := "\ufeffSource,verb,PreContext,Target,PostContext,Extra\n" +
		"ruscorpora,думать,,\"Она думала, что он придёт.\",,x\n" +
		"web,сказать,Вчера,Он сказал приходи.\n"
	rows, err := ReadRows(strings.NewReader(data), FormatCSV)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, engine.Row{
		Source: "ruscorpora",
		Verb:   "думать",
		Target: "Она думала, что он придёт.",
	}, rows[0])
	assert.Equal(t, "Вчера", rows[1].PreContext)
	assert.Equal(t, "", rows[1].PostContext)
}

func TestReadTSV(t *testing.T) {
	data := "Verb\tTarget\n" + "думать\tОна думала, что \"он\" придёт.\n"
	rows, err := ReadRows(strings.NewReader(data), FormatTSV)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Она думала, что \"он\" придёт.", rows[0].Target)
}

func TestReadMissingColumn(t *testing.T) {
	_, err := ReadRows(strings.NewReader("Source,Verb\na,b\n"), FormatCSV)
	assert.ErrorIs(t, err, ErrMissingColumn)
	rows, err := ReadRows(strings.NewReader(""), FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadJSONLines(t *testing.T) {
	data := `{"source":"a","verb":"думать","target":"Она думала."}` + "\n\n" +
		`{"source":"b","verb":"знать","target":"Знаю."}` + "\n"
	rows, err := ReadRows(strings.NewReader(data), FormatJSONL)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "знать", rows[1].Verb)

	_, err = ReadRows(strings.NewReader("{broken\n"), FormatJSONL)
	assert.Error(t, err)
}

func testRecord() engine.AnnotationRecord {
	rec := engine.UnknownRecord(engine.Row{Source: "s", Verb: "думать", Target: "Она думала, что он придёт."})
	rec.Embedding = engine.EmbeddingNone
	rec.Main = morph.FeatureBundle{
		Tense:  morph.TensePast,
		Aspect: morph.AspectImperfective,
		Person: morph.PersonThird,
		Number: morph.NumberSingular,
	}
	rec.Conjunction = "что"
	rec.Unresolved = []engine.Role{engine.RoleSubordinate}
	return rec
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatCSV)
	require.NoError(t, err)
	require.NoError(t, w.Write(results.AnnotatedRow{Record: testRecord()}))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"Source,Verb,Embedding,PreContext,Target,PostContext,MatTense,MatSubjPers,MatSubjNum,"+
			"MatAspect,SubTense,SubSubjPers,SubSubjNum,SubAspect,Conjunction",
		lines[0])
	assert.Equal(t, `s,думать,no,,"Она думала, что он придёт.",,past,third,singular,ipf,-,-,-,-,что`, lines[1])
}

func TestWriteEmptyTSVHasHeader(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatTSV)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, strings.Join(OutputHeader, "\t")+"\n", buf.String())
}

func TestWriteJSONLinesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSONL)
	require.NoError(t, err)
	require.NoError(t, w.Write(results.AnnotatedRow{Record: testRecord()}))
	require.NoError(t, w.Write(results.AnnotatedRow{
		Record: engine.UnknownRecord(engine.Row{Verb: "x"}), Error: "parse failed"}))
	require.NoError(t, w.Close())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"tense":"past"`)
	assert.Contains(t, lines[1], `"error":"parse failed"`)
}
