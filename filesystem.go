package far

import (
	"os"
	"path"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
)

// farFs serves a parsed archive as a read-only afero filesystem. Directories
// do not exist in the format itself; they are synthesized from the slash
// segments of member names.
type farFs struct {
	archive *Archive
	reader  *readerBuffer
}

// NewFarFilesystem parses the archive at archivePath and returns a read-only
// filesystem over its members. The returned value also implements io.Closer
// and holds the archive open until closed.
func NewFarFilesystem(archivePath string) (afero.Fs, error) {
	return NewFarFilesystemWithFs(afero.NewOsFs(), archivePath)
}

// NewFarFilesystemWithFs is NewFarFilesystem with the archive living on the
// given filesystem.
func NewFarFilesystemWithFs(fs afero.Fs, archivePath string) (afero.Fs, error) {
	archive, err := NewReaderWithFs(fs).ReadArchive(archivePath)
	if err != nil {
		return nil, err
	}

	file, err := fs.Open(archivePath)
	if err != nil {
		return nil, err
	}
	reader, err := newReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &farFs{
		archive: archive,
		reader:  reader,
	}, nil
}

func (ff *farFs) Open(name string) (afero.File, error) {
	return ff.OpenFile(name, os.O_RDONLY, os.ModePerm)
}

func (ff *farFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|syscall.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, syscall.EPERM
	}

	lookup := normalizePath(name)

	if entry, err := ff.archive.manifest.FindEntryByName(lookup); err == nil {
		return ff.createFile(entry), nil
	}

	if lookup == "" || ff.isDirectory(lookup) {
		return ff.createDirectory(lookup), nil
	}

	return nil, os.ErrNotExist
}

func (ff *farFs) Stat(name string) (os.FileInfo, error) {
	file, err := ff.Open(name)
	if err != nil {
		return nil, err
	}
	return file.Stat()
}

func (ff *farFs) Name() string {
	return "FarFs"
}

func (ff *farFs) Create(name string) (afero.File, error) {
	return nil, syscall.EPERM
}

func (ff *farFs) Mkdir(name string, perm os.FileMode) error {
	return syscall.EPERM
}

func (ff *farFs) MkdirAll(path string, perm os.FileMode) error {
	return syscall.EPERM
}

func (ff *farFs) Remove(name string) error {
	return syscall.EPERM
}

func (ff *farFs) RemoveAll(path string) error {
	return syscall.EPERM
}

func (ff *farFs) Rename(oldname, newname string) error {
	return syscall.EPERM
}

func (ff *farFs) Chmod(name string, mode os.FileMode) error {
	return syscall.EPERM
}

func (ff *farFs) Chown(name string, uid, gid int) error {
	return syscall.EPERM
}

func (ff *farFs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return syscall.EPERM
}

func (ff *farFs) Close() error {
	return ff.reader.Close()
}

func (ff *farFs) isDirectory(name string) bool {
	prefix := name + "/"
	for _, entry := range ff.archive.manifest.entries {
		if strings.HasPrefix(entry.fileName, prefix) {
			return true
		}
	}
	return false
}

// childNames returns the immediate children of a synthesized directory in
// sorted order, mapped to their entry when the child is a file.
func (ff *farFs) childNames(dir string) ([]string, map[string]*Entry) {
	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	files := make(map[string]*Entry)
	seen := make(map[string]bool)
	names := make([]string, 0)

	for _, entry := range ff.archive.manifest.entries {
		if !strings.HasPrefix(entry.fileName, prefix) {
			continue
		}

		remainder := strings.TrimPrefix(entry.fileName, prefix)
		child := remainder
		subDir := false
		if idx := strings.Index(remainder, "/"); idx >= 0 {
			child = remainder[:idx]
			subDir = true
		}

		if seen[child] {
			continue
		}
		seen[child] = true
		names = append(names, child)

		// first match wins, matching lookup semantics
		if !subDir {
			files[child] = entry
		}
	}

	sort.Strings(names)
	return names, files
}

func (ff *farFs) createFile(entry *Entry) *farFile {
	return &farFile{
		fs:    ff,
		name:  entry.fileName,
		entry: entry,
		fileInfo: &farFileInfo{
			name: path.Base(entry.fileName),
			size: int64(entry.length),
		},
	}
}

func (ff *farFs) createDirectory(name string) *farFile {
	base := path.Base(name)
	if name == "" {
		base = "/"
	}
	return &farFile{
		fs:   ff,
		name: name,
		fileInfo: &farFileInfo{
			name: base,
			dir:  true,
		},
	}
}

// normalizePath maps an afero path onto the manifest's relative slash form.
func normalizePath(name string) string {
	name = path.Clean(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimPrefix(name, "/")
	if name == "." {
		return ""
	}
	return name
}

type farFile struct {
	fs       *farFs
	name     string
	entry    *Entry
	fileInfo os.FileInfo
	reader   *entryReader
}

func (f *farFile) Close() error {
	return nil
}

func (f *farFile) Read(p []byte) (int, error) {
	if f.entry == nil {
		return 0, os.ErrPermission
	}
	if f.reader == nil {
		f.reader = f.entry.newReader(f.fs.reader)
	}
	return f.reader.Read(p)
}

func (f *farFile) ReadAt(p []byte, off int64) (int, error) {
	if f.entry == nil {
		return 0, os.ErrPermission
	}
	if f.reader == nil {
		f.reader = f.entry.newReader(f.fs.reader)
	}
	return f.reader.ReadAt(p, off)
}

func (f *farFile) Seek(offset int64, whence int) (int64, error) {
	if f.entry == nil {
		return 0, os.ErrPermission
	}
	if f.reader == nil {
		f.reader = f.entry.newReader(f.fs.reader)
	}
	return f.reader.Seek(offset, whence)
}

func (f *farFile) Write(p []byte) (n int, err error) {
	return 0, syscall.EPERM
}

func (f *farFile) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, syscall.EPERM
}

func (f *farFile) Name() string {
	return f.name
}

func (f *farFile) Readdir(count int) ([]os.FileInfo, error) {
	if f.entry != nil {
		return nil, os.ErrPermission
	}

	names, files := f.fs.childNames(f.name)
	if count > 0 && count < len(names) {
		names = names[:count]
	}

	infos := make([]os.FileInfo, len(names))
	for i, name := range names {
		if entry, ok := files[name]; ok {
			infos[i] = &farFileInfo{name: name, size: int64(entry.length)}
		} else {
			infos[i] = &farFileInfo{name: name, dir: true}
		}
	}
	return infos, nil
}

func (f *farFile) Readdirnames(n int) ([]string, error) {
	infos, err := f.Readdir(n)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, nil
}

func (f *farFile) Stat() (os.FileInfo, error) {
	return f.fileInfo, nil
}

func (f *farFile) Sync() error {
	return nil
}

func (f *farFile) Truncate(size int64) error {
	return syscall.EPERM
}

func (f *farFile) WriteString(s string) (ret int, err error) {
	return 0, syscall.EPERM
}

type farFileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi *farFileInfo) Name() string {
	return fi.name
}

func (fi *farFileInfo) Size() int64 {
	return fi.size
}

func (fi *farFileInfo) Mode() os.FileMode {
	if fi.dir {
		return os.ModeDir | os.ModePerm
	}
	return os.ModePerm
}

func (fi *farFileInfo) ModTime() time.Time {
	return time.Time{}
}

func (fi *farFileInfo) IsDir() bool {
	return fi.dir
}

func (fi *farFileInfo) Sys() interface{} {
	return nil
}
