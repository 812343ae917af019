package roommedia

import (
	"sort"
	"strings"
)

// RawLayout is one selectable canvas arrangement as listed by the server.
// Name is the unique id.
type RawLayout struct {
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	DisplayName    string   `json:"displayName,omitempty"`
	ReservationIDs []string `json:"reservationIds,omitempty"`
}

// RawLayoutGroup bundles several layouts; GroupLayouts lists the member
// layouts by name.
type RawLayoutGroup struct {
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	DisplayName  string   `json:"displayName,omitempty"`
	GroupLayouts []string `json:"groupLayouts,omitempty"`
}

// Layout is one entry of the merged catalog the layout picker renders. Flat
// layouts and groups are flattened into the same shape, told apart by Type.
type Layout struct {
	ID              string   `json:"id"`
	Label           string   `json:"label"`
	Type            string   `json:"type"`
	ReservationIDs  []string `json:"reservationIds"`
	BelongsToAGroup bool     `json:"belongsToAGroup"`
}

var layoutLabelReplacer = strings.NewReplacer("-", " ", "_", " ")

func layoutLabel(name, displayName string) string {
	if displayName != "" {
		return displayName
	}
	return layoutLabelReplacer.Replace(name)
}

// MergeLayoutList flattens flat layouts and layout groups into one catalog
// sorted by label, case-insensitively, ascending; entries with equal labels
// keep their input order. Every input produces exactly one entry, duplicates
// included. A flat layout gets BelongsToAGroup when its name appears in any
// group's member list; group entries always come out with
// BelongsToAGroup = false, nested or not.
func MergeLayoutList(layouts []RawLayout, layoutGroups []RawLayoutGroup) []Layout {
	groupMembers := NewStringSet()
	for _, group := range layoutGroups {
		for _, member := range group.GroupLayouts {
			groupMembers.Add(member)
		}
	}

	merged := make([]Layout, 0, len(layoutGroups)+len(layouts))
	for _, group := range layoutGroups {
		merged = append(merged, Layout{
			ID:              group.Name,
			Label:           layoutLabel(group.Name, group.DisplayName),
			Type:            group.Type,
			ReservationIDs:  []string{},
			BelongsToAGroup: false,
		})
	}
	for _, layout := range layouts {
		reservationIDs := make([]string, len(layout.ReservationIDs))
		copy(reservationIDs, layout.ReservationIDs)
		merged = append(merged, Layout{
			ID:              layout.Name,
			Label:           layoutLabel(layout.Name, layout.DisplayName),
			Type:            layout.Type,
			ReservationIDs:  reservationIDs,
			BelongsToAGroup: groupMembers.Contains(layout.Name),
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return strings.ToLower(merged[i].Label) < strings.ToLower(merged[j].Label)
	})
	return merged
}
