package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetters(t *testing.T) {
	t.Setenv("PI_TEST_INT", "12")
	t.Setenv("PI_TEST_BAD_INT", "twelve")
	t.Setenv("PI_TEST_FLOAT", " 2.5 ")
	t.Setenv("PI_TEST_BOOL", "true")
	t.Setenv("PI_TEST_STRING", "")

	if got := GetInt("PI_TEST_INT", 1); got != 12 {
		t.Errorf("GetInt = %d", got)
	}
	if got := GetInt("PI_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetInt fallback = %d", got)
	}
	if got := GetFloat("PI_TEST_FLOAT", 0); got != 2.5 {
		t.Errorf("GetFloat = %v", got)
	}
	if got := GetBool("PI_TEST_BOOL", false); !got {
		t.Errorf("GetBool = %v", got)
	}
	if got := GetBool("PI_TEST_UNSET_BOOL", true); !got {
		t.Errorf("GetBool fallback = %v", got)
	}
	if got := GetString("PI_TEST_STRING", "fallback"); got != "" {
		t.Errorf("GetString should return an explicitly empty value, got %q", got)
	}
	if got := GetString("PI_TEST_UNSET_STRING", "fallback"); got != "fallback" {
		t.Errorf("GetString fallback = %q", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("PI_DOTENV_NEW=from-file\nPI_DOTENV_SET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PI_DOTENV_SET", "from-env")
	t.Cleanup(func() { os.Unsetenv("PI_DOTENV_NEW") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("PI_DOTENV_NEW"); got != "from-file" {
		t.Errorf("PI_DOTENV_NEW = %q", got)
	}
	if got := os.Getenv("PI_DOTENV_SET"); got != "from-env" {
		t.Errorf("existing variables must win, got %q", got)
	}
}
