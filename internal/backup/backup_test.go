package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitlit/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitlit.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TEXT)`); err != nil {
		t.Fatalf("failed to create kv table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('habits', '[]'), ('settings', '{}')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func setupTestJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "habitlit.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}
	return path
}

// steppingClock returns a clock that advances one second per call
func steppingClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(time.Second)
		return t
	}
}

func countKV(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return count
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want dir %s", backupPath, mgr.GetBackupDir())
	}
	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, ".db") {
		t.Errorf("unexpected backup name %q", name)
	}
	if got := countKV(t, backupPath); got != 2 {
		t.Errorf("backup has %d rows, want 2", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestCreateBackupJSON(t *testing.T) {
	path := setupTestJSON(t, `{"habits":[]}`)

	mgr := NewManager(path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("backup %s should keep the .json extension", backupPath)
	}
	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"habits":[]}` {
		t.Errorf("backup content = %q", data)
	}
}

func TestCreateBackupRejectsCorruptJSON(t *testing.T) {
	path := setupTestJSON(t, `{"habits":`)
	if _, err := NewManager(path).CreateBackup(); err == nil {
		t.Fatal("expected error for corrupt JSON store")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("got %d backups, want %d", len(backups), constants.MaxBackups)
	}
	// the three oldest are gone
	oldest := backups[len(backups)-1].Timestamp
	want := time.Date(2024, 3, 1, 9, 0, 3, 0, time.Local)
	if !oldest.Equal(want) {
		t.Errorf("oldest kept backup = %v, want %v", oldest, want)
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups on empty dir failed: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	mgr.now = steppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}
	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
	if backups[0].Size == 0 {
		t.Error("backup size should be non-zero")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatal(err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("counter-suffixed backups should be listed, got %d", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO kv (key, value) VALUES ('extra', '1')"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if got := countKV(t, dbPath); got != 3 {
		t.Fatalf("precondition: %d rows", got)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countKV(t, dbPath); got != 2 {
		t.Errorf("restored database has %d rows, want 2", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackupCreatesPreRestoreBackup(t *testing.T) {
	path := setupTestJSON(t, `{"habits":[1]}`)
	mgr := NewManager(path)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"habits":[2]}`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("got %d backups, want 2", len(backups))
	}
	pre, err := os.ReadFile(backups[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(pre) != `{"habits":[2]}` {
		t.Errorf("pre-restore backup = %q", pre)
	}
	restored, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(restored) != `{"habits":[1]}` {
		t.Errorf("restored store = %q", restored)
	}
}

func TestRestoreBackupErrors(t *testing.T) {
	tests := []struct {
		name   string
		backup string
	}{
		{name: "missing file", backup: ""},
		{name: "corrupt json", backup: `{"habits":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setupTestJSON(t, `{}`)
			mgr := NewManager(path)
			backupPath := filepath.Join(t.TempDir(), "habitlit-20240301-090000.json")
			if tt.backup != "" {
				if err := os.WriteFile(backupPath, []byte(tt.backup), 0600); err != nil {
					t.Fatal(err)
				}
			}
			if err := mgr.RestoreBackup(backupPath); err == nil {
				t.Fatal("expected error")
			}
			data, _ := os.ReadFile(path)
			if string(data) != `{}` {
				t.Errorf("store modified on failed restore: %q", data)
			}
		})
	}
}

func TestVerifyBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if err := mgr.verify(dbPath); err != nil {
		t.Errorf("verify on valid database: %v", err)
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("this is not a database file at all, just text"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.verify(bogus); err == nil {
		t.Error("verify should fail on a non-database file")
	}
}
