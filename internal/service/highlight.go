package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HighlightScript builds the JavaScript snippet the browser extension
// injects to mark query terms on a matched page. Terms are embedded as
// a JSON array so arbitrary query text stays safely quoted.
func HighlightScript(query string) string {
	terms := tokenizeQuery(query)
	encoded, err := json.Marshal(terms)
	if err != nil {
		encoded = []byte("[]")
	}

	return fmt.Sprintf(highlightTemplate, string(encoded))
}

const highlightTemplate = `(function() {
  var terms = %s;
  if (!terms.length) return;
  var walker = document.createTreeWalker(document.body, NodeFilter.SHOW_TEXT, null);
  var nodes = [];
  while (walker.nextNode()) {
    var node = walker.currentNode;
    if (node.parentElement && !['SCRIPT','STYLE','MARK'].includes(node.parentElement.tagName)) {
      nodes.push(node);
    }
  }
  nodes.forEach(function(node) {
    var text = node.textContent;
    var lower = text.toLowerCase();
    var hit = terms.some(function(t) { return lower.includes(t); });
    if (!hit) return;
    var span = document.createElement('span');
    var pattern = new RegExp('(' + terms.map(function(t) {
      return t.replace(/[.*+?^${}()|[\]\\]/g, '\\$&');
    }).join('|') + ')', 'gi');
    span.innerHTML = text.replace(pattern, '<mark style="background: #ffe564;">$1</mark>');
    node.parentNode.replaceChild(span, node);
  });
})();`

// HighlightParams carries the parameters the extension needs alongside
// the injected script.
type HighlightParams struct {
	Query  string   `json:"query"`
	Terms  []string `json:"terms"`
	Script string   `json:"script"`
}

func BuildHighlightParams(query string) HighlightParams {
	return HighlightParams{
		Query:  strings.TrimSpace(query),
		Terms:  tokenizeQuery(query),
		Script: HighlightScript(query),
	}
}
