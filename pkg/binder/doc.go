// Package binder fills request structs from form bodies, flat JSON objects
// and chi path parameters.
//
// Binders share one signature and return ErrBinderNotApplicable when a
// request is not theirs, so handler.Wrap can chain them:
//
//	type checkRequest struct {
//		Rule   string     `path:"name"`
//		Value  string     `form:"value"`
//		Values url.Values `form:"*"`
//	}
//
//	handler.Wrap(check, handler.WithBinders[handler.Context, checkRequest](
//		binder.Path(), binder.Form(), binder.JSON(),
//	))
//
// Everything arrives as text and is validated afterwards by a form.Engine,
// so typed fields are only a convenience for values that already passed
// validation.
package binder
