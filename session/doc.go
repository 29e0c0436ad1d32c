// Package session holds viewer sessions on the server and threads the
// opaque session token through a signed cookie.
//
// MemoryStore implements showoff.SessionStore. Sessions expire after the
// configured TTL and are dropped the next time they are read.
//
// Cookie signs the token with gorilla/securecookie so a client cannot
// forge a token it was not issued:
//
//	codec, _ := session.NewCookie(session.CookieConfig{Name: "showoff", Secret: secret})
//	token, err := codec.Read(r)
//	if err != nil {
//	    token, err = codec.Issue(w)
//	}
package session
