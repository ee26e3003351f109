package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
)

// thinClientJS connects to the live endpoint, replaces the root markup on
// every html message and forwards clicks on bound elements and document
// keyup events.
const thinClientJS = `(function () {
  var root = document.getElementById("vango-root");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/_vango/live");

  function send(msg) {
    if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    if (msg.t === "html") {
      root.innerHTML = msg.html;
    } else if (msg.t === "error") {
      console.error("[vango]", msg.code || "", msg.msg);
    }
  };

  document.addEventListener("click", function (e) {
    var el = e.target.closest("[data-on-click]");
    if (!el || !el.dataset.hid) return;
    e.preventDefault();
    send({ t: "event", hid: el.dataset.hid, ev: "onclick" });
  });

  document.addEventListener("keyup", function (e) {
    send({ t: "keyup", key: e.key });
  });
})();
`

var thinClientETag = func() string {
	sum := sha256.Sum256([]byte(thinClientJS))
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:8]))
}()

func (s *Server) serveThinClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", thinClientETag)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")

	if etagMatches(r.Header.Get("If-None-Match"), thinClientETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write([]byte(thinClientJS))
}

func etagMatches(ifNoneMatchHeader, etag string) bool {
	if ifNoneMatchHeader == "" || etag == "" {
		return false
	}
	// Handle lists: If-None-Match: "abc", W/"def"
	for _, part := range strings.Split(ifNoneMatchHeader, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == "*" || candidate == etag || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
