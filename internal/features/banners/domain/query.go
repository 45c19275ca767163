package domain

import "strings"

// QueryKey namespaces a cached query, e.g. {"banners", "main"}.
// A shorter key is a group: it covers every key it prefixes.
type QueryKey []string

// String joins the key segments with ":".
func (k QueryKey) String() string {
	return strings.Join(k, ":")
}

// Covers reports whether k is group itself or one of its members.
func (k QueryKey) Covers(group QueryKey) bool {
	if len(group) > len(k) {
		return false
	}
	for i := range group {
		if k[i] != group[i] {
			return false
		}
	}
	return true
}

var (
	// MainBannersKey caches the public main banner list.
	MainBannersKey = QueryKey{"banners", "main"}
	// SectionBannersKey caches the public section banner list.
	SectionBannersKey = QueryKey{"banners", "section"}
	// AdminBannersKey caches the privileged listing.
	AdminBannersKey = QueryKey{"admin", "banners"}

	// PublicGroup covers every public banner query.
	PublicGroup = QueryKey{"banners"}
	// AdminGroup covers every admin banner query.
	AdminGroup = QueryKey{"admin", "banners"}
)

// MutationInvalidates lists the query groups made stale by any successful banner mutation.
func MutationInvalidates() []QueryKey {
	return []QueryKey{AdminGroup, PublicGroup}
}
