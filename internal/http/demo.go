package httpapi

import (
	"html"
	"net/http"
)

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	page := `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>warehouse-grading demo</title>
  <style>
    body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; margin: 16px; background: #f9fafb; }
    .cols { display: grid; gap: 12px; grid-template-columns: 1fr; }
    @media (min-width: 900px) { .cols { grid-template-columns: 1fr 1fr; } }
    .card { border: 1px solid #e6e6e6; border-radius: 12px; padding: 12px; background: #fff; }
    label { display: block; margin-top: 8px; font-size: 14px; color: #444; }
    input, select { padding: 8px; font-size: 15px; width: 100%; box-sizing: border-box; }
    button { margin-top: 12px; padding: 10px 14px; font-size: 16px; }
    .grade { font-size: 48px; font-weight: bold; }
    .muted { color: #666; font-size: 14px; }
    .positive { color: #047857; } .warning { color: #B45309; } .negative { color: #B91C1C; }
    pre { white-space: pre-wrap; background: #f6f6f6; padding: 12px; border-radius: 10px; }
  </style>
</head>
<body>
  <h2>Warehouse grading</h2>
  <div class="muted">Server: <code>` + html.EscapeString(r.Host) + `</code></div>

  <div class="cols" style="margin-top:12px;">
    <form id="form" class="card">
      <label>Business type <select id="business_type"></select></label>
      <label>Name <input id="name" value="Bhiwandi DC"/></label>
      <label>Address <input id="address" list="suggestions" value="Industrial Estate, Bhiwandi, Maharashtra 421302"/></label>
      <datalist id="suggestions"></datalist>
      <label>Warehouse size (sq ft) <input id="warehouse_size" value="100000"/></label>
      <label>Plot area (sq ft) <input id="plot_area" value="150000"/></label>
      <label>Construction
        <select id="construction_type">
          <option value="">-</option><option>PEB</option><option selected>RCC</option><option>PEB+RCC</option>
        </select>
      </label>
      <label>Eaves height (ft) <input id="eaves_height" value="34"/></label>
      <label>Number of docks <input id="number_of_docks" value="35"/></label>
      <label>LMV circulation (sq ft) <input id="lmv_circulation" value="8000"/></label>
      <label>HMV circulation (sq ft) <input id="hmv_circulation" value="7000"/></label>
      <label>Parking spaces <input id="parking_spaces" value="20"/></label>
      <button type="submit">Grade</button>
      <button type="button" id="save">Save</button>
    </form>

    <div class="card">
      <div id="grade" class="grade">-</div>
      <ul id="insights"></ul>
      <pre id="out"></pre>
    </div>
  </div>

<script>
const fields = ["name","address","warehouse_size","plot_area","construction_type","eaves_height",
  "number_of_docks","lmv_circulation","hmv_circulation","parking_spaces"];

function payload() {
  const spec = {};
  for (const f of fields) spec[f] = document.getElementById(f).value;
  return { business_type: document.getElementById("business_type").value, spec };
}

async function loadTemplates() {
  const res = await fetch("/templates");
  const data = await res.json();
  const sel = document.getElementById("business_type");
  for (const t of data.items || []) {
    const o = document.createElement("option");
    o.textContent = t.name;
    sel.appendChild(o);
  }
}

async function suggest() {
  const q = document.getElementById("address").value;
  const res = await fetch("/addresses?q=" + encodeURIComponent(q));
  const data = await res.json();
  const dl = document.getElementById("suggestions");
  dl.innerHTML = "";
  for (const a of data.suggestions || []) {
    const o = document.createElement("option");
    o.value = a;
    dl.appendChild(o);
  }
}

async function send(path) {
  const res = await fetch(path, {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(payload())
  });
  return res.json();
}

document.getElementById("form").addEventListener("submit", async (e) => {
  e.preventDefault();
  const data = await send("/grade");
  const out = document.getElementById("out");
  const list = document.getElementById("insights");
  list.innerHTML = "";
  if (data.error) {
    out.textContent = "Error: " + data.error;
    return;
  }
  const g = document.getElementById("grade");
  g.textContent = data.analysis.grade + "%";
  g.style.color = data.report.color;
  for (const i of data.analysis.insights) {
    const li = document.createElement("li");
    li.className = i.type;
    li.textContent = i.text;
    list.appendChild(li);
  }
  out.textContent = JSON.stringify(data.report.key_metrics, null, 2);
});

document.getElementById("save").addEventListener("click", async () => {
  const data = await send("/properties");
  document.getElementById("out").textContent = data.error ? "Error: " + data.error : "Saved as " + data.id;
});

document.getElementById("address").addEventListener("input", suggest);
loadTemplates();
</script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}
