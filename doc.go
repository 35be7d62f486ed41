// Package formdesigner is the entry point for embedding the visual form
// designer. A Workspace owns one form document and wires the palette, the
// drag-and-drop resolver and the renderers around it:
//
//	ws, err := formdesigner.NewWorkspace()
//	if err != nil {
//		return err
//	}
//	ws.Store().AddSection()
//	ws.Drop(formdesigner.DragEnd{Active: "email", Over: "section-1"})
//	out, _, err := ws.Render(ctx, "json", formdesigner.RenderOptions{})
//
// The packages under pkg/ can also be used on their own.
package formdesigner
