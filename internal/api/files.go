package api

import "path/filepath"

// refPath resolves a file reference from the results source against its
// configured directory. References are reduced to their base name so
// reads stay inside the directory.
func refPath(dir, ref string) (string, bool) {
    if ref == "" {
        return "", false
    }
    return filepath.Join(dir, filepath.Base(ref)), true
}
