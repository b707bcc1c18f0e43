package sozluk

// Capability is a moderation capability flag. Capabilities are a data-model
// stub: they are persisted nowhere yet and never enforced in the request
// flow.
type Capability uint16

const (
	// CapabilitySimpleRW lets a human read topics and entries and write entries.
	CapabilitySimpleRW Capability = 1 << iota
	// CapabilityMoveTopic lets a human bulk-move entries from one topic to another.
	CapabilityMoveTopic
	// CapabilityDeleteEntry lets a human delete anybody's entries for moderation.
	CapabilityDeleteEntry
	// CapabilityVerifyHuman lets a human verify new humans by granting SimpleRW.
	CapabilityVerifyHuman
	// CapabilityDeverifyHuman lets a human strip all capabilities from a verified human.
	CapabilityDeverifyHuman
	// CapabilityViewRealName lets a human view the real names of others.
	CapabilityViewRealName
	// CapabilityChangePrimaryIdentifier lets a human change another's primary
	// author name with their permission.
	CapabilityChangePrimaryIdentifier
	// CapabilityExtendCapabilities lets a human grant their capabilities to
	// others, excluding this one and ExtendCapabilitiesLoop.
	CapabilityExtendCapabilities
	// CapabilityExtendCapabilitiesLoop additionally allows granting
	// ExtendCapabilities itself.
	CapabilityExtendCapabilitiesLoop
	// CapabilityPersistentCapabilities makes the capabilities removable only
	// by the administrator.
	CapabilityPersistentCapabilities
	// CapabilityAdministrator overrides certain restrictions.
	CapabilityAdministrator
)

// Has reports whether all flags in want are set.
func (c Capability) Has(want Capability) bool { return c&want == want }

// Human is a registered person behind one or more author names.
type Human struct {
	Identifier        int64
	RealName          string
	PrimaryAuthorName AuthorName
	Capabilities      Capability
}
