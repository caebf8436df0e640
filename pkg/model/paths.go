package model

import (
	"fmt"
	"strings"
)

// Archive path helpers. All repository state, local or remote, lives
// under these key spaces so that a remote is nothing more than a second
// pair of stores rooted at another directory: version content keys the
// object store, branch, tag and lock records key the metadata store.

// GetArchivePathToVersion keys one stored version of one file
func GetArchivePathToVersion(branch, path string, version Version) string {
	return fmt.Sprint(GetArchivePathPrefixToVersions(branch, path), version.String())
}

// GetArchivePathPrefixToVersions keys the version space of one file on a branch
func GetArchivePathPrefixToVersions(branch, path string) string {
	return fmt.Sprint(branch, "/", path, "/")
}

// GetArchivePathToBranch keys a branch metadata record
func GetArchivePathToBranch(branch string) string {
	return fmt.Sprint(getArchivePathToBranches(), branch, ".yaml")
}

// GetArchivePathPrefixToBranches keys the branch record space
func GetArchivePathPrefixToBranches() string {
	return getArchivePathToBranches()
}

func getArchivePathToBranches() string {
	return fmt.Sprint("branches/")
}

// GetArchivePathToTag keys a tag record
func GetArchivePathToTag(name string) string {
	return fmt.Sprint(getArchivePathToTags(), name, ".yaml")
}

// GetArchivePathPrefixToTags keys the tag record space
func GetArchivePathPrefixToTags() string {
	return getArchivePathToTags()
}

func getArchivePathToTags() string {
	return fmt.Sprint("tags/")
}

// GetArchivePathToLock keys the advisory transfer lock for a branch
func GetArchivePathToLock(branch string) string {
	return fmt.Sprint("locks/", branch, ".lock")
}

// BranchNameFromArchivePath recovers a branch name from its record key
func BranchNameFromArchivePath(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, getArchivePathToBranches())
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, ".yaml")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// TagNameFromArchivePath recovers a tag name from its record key
func TagNameFromArchivePath(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, getArchivePathToTags())
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, ".yaml")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// VersionFromArchivePath recovers the version from a stored object key
func VersionFromArchivePath(key string) (Version, error) {
	idx := strings.LastIndex(key, "/")
	return ParseVersion(key[idx+1:])
}
