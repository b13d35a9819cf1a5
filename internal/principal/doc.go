// Package principal runs one artifact operation on behalf of a user.
//
// Every operation follows the same steps: an optional role check, authentication through the
// catalog, an existence check for update and delete, then the write itself. Rejections are
// reported as a [Result] with a non-OK [Status]; only storage faults come back as errors.
//
// A [Principal] with [RoleAdministrator] may add and delete only when its username is
// [AdminUsername]. Update is not role-gated for either role.
package principal
