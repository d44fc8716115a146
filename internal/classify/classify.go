// Package classify assigns a coarse category/subcategory to a question stem
// from a fixed keyword table.
package classify

import (
	"strings"

	"cert-study/internal/domain"
)

const (
	Networking         = "Networking"
	Compute            = "Compute"
	Storage            = "Storage"
	IdentityGovernance = "Identities & Governance"
	Monitoring         = "Monitoring & Maintenance"
)

type subRule struct {
	keywords    []string
	subcategory string
}

type group struct {
	category string
	triggers []string
	// unless skips the group when any of these keywords is present
	unless   []string
	subs     []subRule
	fallback string
}

// table is evaluated top to bottom; the first matching group wins and, within it,
// the first matching sub-rule.
var table = []group{
	{
		category: Networking,
		triggers: []string{"vnet", "subnet", "cidr", "peering", "nsg", "application security group",
			"bastion", "azure firewall", "udr", "route table", "vpn", "expressroute"},
		subs: []subRule{
			{[]string{"peering"}, "VNet Peering"},
			{[]string{"nsg", "application security group"}, "NSG/ASG"},
			{[]string{"vpn", "expressroute"}, "Hybrid Connectivity"},
			{[]string{"bastion"}, "Bastion"},
			{[]string{"route", "udr"}, "Routing/UDR"},
		},
		fallback: "VNet/Subnet",
	},
	{
		category: Compute,
		triggers: []string{"virtual machine", "vm", "scale set", "availability set", "image", "managed disk"},
		unless:   []string{"blob"},
		subs: []subRule{
			{[]string{"scale set", "vmss"}, "VM Scale Set"},
			{[]string{"availability set", "availability zone"}, "Availability/Resiliency"},
			{[]string{"image"}, "Image/Template"},
			{[]string{"disk"}, "Disks/Snapshots"},
		},
		fallback: "VM Deployment/Config",
	},
	{
		category: Storage,
		triggers: []string{"storage account", "blob", "file share", "azure files", "sas", "lrs", "grs", "access tier"},
		subs: []subRule{
			{[]string{"blob"}, "Blob"},
			{[]string{"file share", "azure files", "files sync"}, "Azure Files/SMB"},
			{[]string{"sas", "firewall", "private endpoint"}, "Security/Access"},
			{[]string{"lrs", "grs", "gzs", "zrs"}, "Redundancy"},
			{[]string{"access tier", "hot", "cool", "archive"}, "Tiering"},
		},
		fallback: "General",
	},
	{
		category: IdentityGovernance,
		triggers: []string{"azure ad", "entra id", "rbac", "role assignment", "subscription", "policy", "blueprint"},
		subs: []subRule{
			{[]string{"rbac", "role"}, "RBAC"},
			{[]string{"policy", "blueprint", "initiative", "assignment"}, "Policy/Blueprint"},
			{[]string{"subscription", "management group"}, "Subscription/MG"},
			{[]string{"user", "group", "entra"}, "Users/Groups"},
		},
		fallback: "General",
	},
	{
		category: Monitoring,
		triggers: []string{"azure monitor", "metrics", "log analytics", "kusto", "alert", "action group",
			"backup", "site recovery", "update management"},
		subs: []subRule{
			{[]string{"log analytics", "kusto", "workspace"}, "LA/Logs"},
			{[]string{"alert", "action group"}, "Alerts"},
			{[]string{"backup", "site recovery"}, "Backup/ASR"},
			{[]string{"update management", "patch"}, "Updates"},
		},
		fallback: "General",
	},
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Classify returns the (category, subcategory) pair for a stem.
// Matching is case-insensitive substring matching; no match yields ("Unknown", "Unknown").
func Classify(stem string) (string, string) {
	s := strings.ToLower(stem)
	for _, g := range table {
		if !containsAny(s, g.triggers) || containsAny(s, g.unless) {
			continue
		}
		for _, sub := range g.subs {
			if containsAny(s, sub.keywords) {
				return g.category, sub.subcategory
			}
		}
		return g.category, g.fallback
	}
	return domain.CategoryUnknown, domain.CategoryUnknown
}

// Apply fills Category and Subcategory of every question from its stem.
func Apply(questions []*domain.Question) {
	for _, q := range questions {
		q.Category, q.Subcategory = Classify(q.Stem)
	}
}
