package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleDashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}

// dashboardHTML is the single-page dashboard: a ticker and date-range form,
// a closing price + moving averages chart, a Bollinger Bands chart, and a
// toggleable raw-data table. Charts are rendered client-side with Plotly.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Stock Analysis Dashboard</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
<style>
  body { font-family: sans-serif; margin: 0; background: #fafafa; color: #222; }
  header { padding: 1rem 2rem; background: #1f2937; color: #fff; }
  header h1 { margin: 0; font-size: 1.3rem; }
  #controls { display: flex; gap: 1rem; align-items: end; padding: 1rem 2rem; flex-wrap: wrap; }
  #controls label { display: block; font-size: 0.8rem; margin-bottom: 0.2rem; }
  #controls input { padding: 0.4rem; }
  #controls button { padding: 0.5rem 1.2rem; }
  .chart { margin: 0 2rem 2rem; background: #fff; border: 1px solid #ddd; }
  #warning { margin: 0 2rem 1rem; color: #b45309; }
  #rawwrap { margin: 0 2rem 2rem; }
  table { border-collapse: collapse; font-size: 0.85rem; }
  th, td { border: 1px solid #ddd; padding: 0.3rem 0.6rem; text-align: right; }
  th { background: #f3f4f6; }
</style>
</head>
<body>
<header><h1>&#128200; Interactive Stock Analysis Dashboard</h1></header>

<div id="controls">
  <div><label for="symbol">Ticker Symbol</label><input id="symbol" value="AAPL"></div>
  <div><label for="start">Start Date</label><input id="start" type="date"></div>
  <div><label for="end">End Date</label><input id="end" type="date"></div>
  <button id="load">Analyze</button>
  <label><input id="raw" type="checkbox"> Show Raw Data Table</label>
</div>

<div id="warning"></div>
<div id="price" class="chart"></div>
<div id="boll" class="chart"></div>
<div id="rawwrap"></div>

<script>
function isoDate(d) { return d.toISOString().slice(0, 10); }

(function initDates() {
  const end = new Date();
  const start = new Date();
  start.setFullYear(end.getFullYear() - 2);
  document.getElementById("start").value = isoDate(start);
  document.getElementById("end").value = isoDate(end);
})();

async function load() {
  const symbol = document.getElementById("symbol").value.trim().toUpperCase();
  const start = document.getElementById("start").value;
  const end = document.getElementById("end").value;
  const warning = document.getElementById("warning");
  warning.textContent = "";

  const resp = await fetch("/api/analysis?symbol=" + encodeURIComponent(symbol) +
    "&start=" + start + "&end=" + end);
  if (!resp.ok) {
    const body = await resp.json().catch(() => ({}));
    warning.textContent = body.error || "Request failed.";
    return;
  }
  const r = await resp.json();

  Plotly.newPlot("price", [
    { x: r.dates, y: r.close, mode: "lines", name: "Close Price", line: { color: "royalblue" } },
    { x: r.dates, y: r.sma_short, mode: "lines", name: "SMA " + r.short_window, line: { color: "orange", dash: "dash" } },
    { x: r.dates, y: r.sma_long, mode: "lines", name: "SMA " + r.long_window, line: { color: "green", dash: "dash" } }
  ], {
    title: "Closing Price & Moving Averages — " + r.symbol,
    xaxis: { title: "Date" }, yaxis: { title: "Price (USD)" }, template: "plotly_white"
  }, { responsive: true });

  Plotly.newPlot("boll", [
    { x: r.dates, y: r.close, mode: "lines", name: "Close Price", line: { color: "royalblue" } },
    { x: r.dates, y: r.boll_upper, mode: "lines", name: "Upper Band", line: { color: "rgba(255,0,0,0.5)" } },
    { x: r.dates, y: r.boll_lower, mode: "lines", name: "Lower Band", line: { color: "rgba(0,128,0,0.5)" },
      fill: "tonexty", fillcolor: "rgba(0,128,0,0.1)" }
  ], {
    title: "Bollinger Bands — " + r.symbol,
    xaxis: { title: "Date" }, yaxis: { title: "Price (USD)" }, template: "plotly_white"
  }, { responsive: true });

  if (document.getElementById("raw").checked) {
    await loadRaw(symbol, start, end);
  } else {
    document.getElementById("rawwrap").innerHTML = "";
  }
}

async function loadRaw(symbol, start, end) {
  const resp = await fetch("/api/history?symbol=" + encodeURIComponent(symbol) +
    "&start=" + start + "&end=" + end + "&limit=100");
  if (!resp.ok) return;
  const data = await resp.json();

  let html = "<h3>Historical Data</h3><table><tr><th>Date</th><th>Open</th><th>High</th>" +
    "<th>Low</th><th>Close</th><th>Volume</th></tr>";
  for (const row of data.rows) {
    html += "<tr><td>" + row.date + "</td><td>" + row.open.toFixed(2) +
      "</td><td>" + row.high.toFixed(2) + "</td><td>" + row.low.toFixed(2) +
      "</td><td>" + row.close.toFixed(2) + "</td><td>" + row.volume + "</td></tr>";
  }
  html += "</table>";
  document.getElementById("rawwrap").innerHTML = html;
}

document.getElementById("load").addEventListener("click", load);
document.getElementById("raw").addEventListener("change", load);
load();
</script>
</body>
</html>
`
