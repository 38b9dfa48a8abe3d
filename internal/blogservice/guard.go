package blogservice

// CanDelete reports whether actingUserID owns blog. Blogs without an owner cannot be deleted.
func CanDelete(actingUserID int, blog *Blog) bool {
	if blog == nil || blog.UserID == nil {
		return false
	}

	return *blog.UserID == actingUserID
}

// OwnerFor returns the owner reference attached to a blog created by actingUserID.
func OwnerFor(actingUserID int) *int {
	id := actingUserID
	return &id
}
