// Package http serves the photo viewer over HTTP.
//
// Handler builds a chi router from a showoff.RouteTable: every logical
// route becomes one chi pattern, so deployments can move pages around
// through configuration alone.
//
// # Access control
//
// Album routes (album, list, show, show_slideshow, image_page, get_image)
// go through the Gate first. A caller without a session for a gated album
// is redirected with 303 See Other to the album's login route, carrying the
// original request URI in the next query parameter. The session token lives
// in a signed cookie written by the TokenCodec on the login page.
//
// # Errors
//
// Every not-found kind from the showoff package renders the theme's
// 404.html with status 404. Other errors are logged and answered with 500.
//
// # Usage
//
//	handler, err := http.NewHandler(&http.HandlerConfig{Routes: routes, Static: static}, http.Services{
//	    Pages:  pages,
//	    Images: images,
//	    Gate:   gate,
//	    Theme:  theme,
//	    Tokens: cookie,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nethttp.ListenAndServe(":8080", handler.Router())
package http
