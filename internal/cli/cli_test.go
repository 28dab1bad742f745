package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Fixed-width status payload publishing the bill with sponsor MARTINS.
const statusLine = "2011S01234 1MARTINS             00000 " +
	"                                  00000 000000000"

func TestRootCommandRejectsInvalidFormat(t *testing.T) {
	_, err := runCommand(t, "--format", "xml", "changelog", "--db", "unused.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestProcessShowChangelog(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")
	sobiFile := writeTestFile(t, dir, "SOBI.D110105.T100000.TXT",
		statusLine+"\n2011S01234 3AN ACT to amend the tax law\n")

	out, err := runCommand(t, "process", "--db", db, sobiFile)
	require.NoError(t, err)
	assert.Contains(t, out, "processed 1 files")

	out, err = runCommand(t, "show", "--db", db, "S1234-2011")
	require.NoError(t, err)
	assert.Contains(t, out, `"bill_id": "S1234-2011"`)
	assert.Contains(t, out, "AN ACT to amend the tax law")

	out, err = runCommand(t, "--format", "json", "show", "--db", db, "S1234-2011")
	require.NoError(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	out, err = runCommand(t, "changelog", "--db", db, "--limit", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "2011/bill/S1234-2011")
	assert.Contains(t, out, "SOBI.D110105.T100000.TXT")
}

func TestShowMissingBill(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")

	// Create the database first so only the lookup fails.
	sobiFile := writeTestFile(t, dir, "SOBI.D110105.T100000.TXT", statusLine+"\n")
	_, err := runCommand(t, "process", "--db", db, sobiFile)
	require.NoError(t, err)

	_, err = runCommand(t, "show", "--db", db, "S9999-2011")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestProcessRequiresDBFlag(t *testing.T) {
	_, err := runCommand(t, "process", "somefile")
	assert.Error(t, err)
}

func TestCalendarCommand(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")
	calFile := writeTestFile(t, dir, "SOBI.D110304.T151045.TXT", `<?xml version="1.0"?>
<SENATEDATA>
 <sencalendar no="12" year="2011" sessyr="2011" action="replace">
  <supplemental id="A">
   <caldate>2011-03-07</caldate>
   <sections>
    <section name="THIRD READING" cd="S3" type="R">
     <calnos>
      <calno no="0042">
       <bill no="S1234"/>
       <sponsor>MARTINS</sponsor>
      </calno>
     </calnos>
    </section>
   </sections>
  </supplemental>
 </sencalendar>
</SENATEDATA>`)

	out, err := runCommand(t, "calendar", "--db", db, calFile)
	require.NoError(t, err)
	assert.Contains(t, out, "processed 1 files")

	// The referenced bill is created as a side effect.
	out, err = runCommand(t, "show", "--db", db, "S1234-2011")
	require.NoError(t, err)
	assert.Contains(t, out, `"bill_id": "S1234-2011"`)

	out, err = runCommand(t, "changelog", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "2011/calendar/cal-floor-12-2011")
}

func TestExitError(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	wrapped := WrapExitError(ExitFailure, "outer", os.ErrNotExist)
	assert.True(t, strings.Contains(wrapped.Error(), "outer"))
	assert.ErrorIs(t, wrapped, os.ErrNotExist)
	assert.Equal(t, ExitFailure, GetExitCode(os.ErrPermission), "plain errors default to failure")
}
