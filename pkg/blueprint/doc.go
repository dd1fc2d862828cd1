// Package blueprint reads and renumbers WHAM missile blueprints for Space Engineers.
//
// A WHAM missile blueprint (bp.sbc) carries one number in four places: the Subtype of
// the blueprint Id, the grid's DisplayName, the name of its single block group, and a
// "Missile number=<n>" line in a programmable block's custom data. Every block in the
// group is named "(<group name>) <rest>".
//
// 🔍 ExtractIdentity streams a document once and returns an IdentityRecord when all four
// numbers agree. ✏️ RewriteWithNewIdentity streams it again and returns a copy with the
// number replaced everywhere, leaving all other bytes as they were.
package blueprint
