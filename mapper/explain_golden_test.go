/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package mapper

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirpx.dev/emit/code"
	"dirpx.dev/emit/tag"
	"google.golang.org/grpc/codes"
)

var update = flag.Bool("update", false, "update golden files")

// TestExplain_Golden keeps Explain output stable.
// Update with: go test ./mapper -run Explain_Golden -update
func TestExplain_Golden(t *testing.T) {
	m, err := New(
		WithHTTPTag(code.Internal, "{urn:dirpx:synch}*", 502),
		WithGRPCTag(code.Internal, "{urn:dirpx:synch}*", int(codes.Unavailable)),
		WithHTTPOverride(code.Canceled, 499),
		WithGRPCOverride(code.Canceled, int(codes.Canceled)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var b strings.Builder
	b.WriteString(m.Explain(code.Internal, tag.New("urn:dirpx:synch", "connector-not-started")))
	b.WriteString("\n---\n")
	b.WriteString(m.Explain(code.Canceled, tag.Empty))
	b.WriteString("\n---\n")
	b.WriteString(m.Explain(code.Timeout, tag.Empty))
	b.WriteString("\n")
	got := b.String()

	goldenPath := filepath.Join("testdata", "explain.golden")
	if *update {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
			t.Fatalf("mkdir testdata: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(got), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v (run with -update to create)", err)
	}
	normalize := func(s string) string { return strings.TrimRight(s, "\r\n") }
	if normalize(string(want)) != normalize(got) {
		t.Fatalf("Explain() output mismatch.\n--- want ---\n%s\n--- got ---\n%s", want, got)
	}
}
