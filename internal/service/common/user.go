//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
)

// adminGroupName is the macOS group granted to administrator accounts.
const adminGroupName = "admin"

// InvokingUser returns the username that launched the bootstrap.
// When the process runs under sudo, the real user comes from SUDO_USER
// rather than the effective (root) identity.
func InvokingUser() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && os.Geteuid() == 0 {
		return sudoUser, nil
	}

	currentUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}

	return currentUser.Username, nil
}

// MemberOfAdminGroup reports whether the user belongs to the macOS admin
// group. Always false on other systems.
func MemberOfAdminGroup(username string) bool {
	if runtime.GOOS != "darwin" {
		return false
	}

	account, err := user.Lookup(username)
	if err != nil {
		return false
	}

	adminGroup, err := user.LookupGroup(adminGroupName)
	if err != nil {
		return false
	}

	groupIDs, err := account.GroupIds()
	if err != nil {
		return false
	}

	for _, gid := range groupIDs {
		if gid == adminGroup.Gid {
			return true
		}
	}

	return false
}

// OwnerSpec renders the chown owner argument for the invoking user,
// appending the admin group when the user is a member.
func OwnerSpec(username string) string {
	if MemberOfAdminGroup(username) {
		return username + ":" + adminGroupName
	}

	return username
}
