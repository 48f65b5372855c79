package render

// Page templates. The JSON payload is embedded in a non-executing script
// block and parsed by the client-side script, which does all marker and
// popup work in the browser; the pages have no server dependency after load.

const flightsTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Live Flights</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  html, body { margin: 0; height: 100%; font-family: system-ui, sans-serif; }
  #map { height: 100%; }
  .toolbar {
    position: absolute; top: 10px; right: 10px; z-index: 1000;
    background: #fff; padding: 8px 10px; border-radius: 4px;
    box-shadow: 0 1px 4px rgba(0,0,0,.3);
  }
  .toolbar input { width: 180px; }
  .toolbar .count { font-size: 12px; color: #555; margin-top: 4px; }
  .footer {
    position: absolute; bottom: 0; left: 0; z-index: 1000;
    background: rgba(255,255,255,.8); font-size: 11px; padding: 2px 6px;
  }
  .popup table td { padding: 1px 6px 1px 0; }
</style>
</head>
<body>
<div id="map"></div>
<div class="toolbar">
  <input id="filter" type="text" placeholder="Filter callsign / country">
  <div class="count"><span id="shown">0</span> of {{.Count}} flights</div>
</div>
<div class="footer">Generated {{.GeneratedAt}} from OpenSky Network data</div>
<script id="flight-data" type="application/json">{{.Payload}}</script>
<script>
(function () {
  var flights = JSON.parse(document.getElementById('flight-data').textContent);

  var map = L.map('map').setView([39.8, -98.6], 4);
  L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
    maxZoom: 12,
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);

  function esc(v) {
    return String(v).replace(/&/g, '&amp;').replace(/</g, '&lt;')
      .replace(/>/g, '&gt;').replace(/"/g, '&quot;');
  }

  function val(v, unit) {
    if (v === null || v === undefined) { return 'N/A'; }
    return esc(v) + (unit ? ' ' + unit : '');
  }

  function popupHtml(f) {
    var rows =
      '<tr><td>Country</td><td>' + val(f.origin_country, '') + '</td></tr>' +
      '<tr><td>Altitude</td><td>' + val(f.baro_altitude, 'm') + '</td></tr>' +
      '<tr><td>Velocity</td><td>' + val(f.velocity, 'm/s') + '</td></tr>' +
      '<tr><td>Heading</td><td>' + val(f.heading, '°') + '</td></tr>' +
      '<tr><td>Vertical rate</td><td>' + val(f.vertical_rate, 'm/s') + '</td></tr>' +
      '<tr><td>On ground</td><td>' + (f.on_ground ? 'yes' : 'no') + '</td></tr>';
    var name = f.callsign !== '' ? f.callsign : f.icao24;
    return '<div class="popup"><b>' + esc(name) + '</b>' +
      '<table>' + rows + '</table></div>';
  }

  var entries = [];
  flights.forEach(function (f) {
    if (f.latitude === null || f.longitude === null) { return; }
    var m = L.marker([f.latitude, f.longitude]);
    m.bindPopup(popupHtml(f));
    m.addTo(map);
    entries.push({ marker: m, text: (f.callsign + ' ' + f.origin_country).toLowerCase() });
  });

  var shown = document.getElementById('shown');
  shown.textContent = entries.length;

  document.getElementById('filter').addEventListener('input', function (ev) {
    var q = ev.target.value.toLowerCase();
    var visible = 0;
    entries.forEach(function (e) {
      if (q === '' || e.text.indexOf(q) !== -1) {
        if (!map.hasLayer(e.marker)) { map.addLayer(e.marker); }
        visible++;
      } else if (map.hasLayer(e.marker)) {
        map.removeLayer(e.marker);
      }
    });
    shown.textContent = visible;
  });
})();
</script>
</body>
</html>
`

const faresTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Airfare Explorer</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  html, body { margin: 0; height: 100%; font-family: system-ui, sans-serif; }
  #map { height: 100%; }
  .footer {
    position: absolute; bottom: 0; left: 0; z-index: 1000;
    background: rgba(255,255,255,.8); font-size: 11px; padding: 2px 6px;
  }
  .fare-popup img { width: 220px; display: block; margin-bottom: 6px; }
  .fare-popup table { font-size: 12px; border-collapse: collapse; }
  .fare-popup td { padding: 1px 8px 1px 0; }
</style>
</head>
<body>
<div id="map"></div>
<div class="footer">Generated {{.GeneratedAt}} &mdash; demo fares, regenerated every run</div>
<script id="fare-data" type="application/json">{{.Payload}}</script>
<script>
(function () {
  var sheets = JSON.parse(document.getElementById('fare-data').textContent);

  var map = L.map('map').setView([39.8, -98.6], 4);
  L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
    maxZoom: 12,
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);

  function esc(v) {
    return String(v).replace(/&/g, '&amp;').replace(/</g, '&lt;')
      .replace(/>/g, '&gt;').replace(/"/g, '&quot;');
  }

  function popupHtml(s) {
    var a = s.airport;
    var html = '<div class="fare-popup"><b>' + esc(a.code) + '</b> &mdash; ' +
      esc(a.name) + '<br><i>' + esc(a.state) + '</i><br>';
    if (a.image !== '') {
      html += '<img src="' + esc(a.image) + '" alt="' + esc(a.name) + '">';
    }
    html += '<table>';
    s.fares.forEach(function (f) {
      html += '<tr><td>' + esc(f.month) + '</td><td>$' + esc(f.price) + '</td></tr>';
    });
    html += '</table></div>';
    return html;
  }

  sheets.forEach(function (s) {
    L.marker([s.airport.lat, s.airport.lon])
      .bindPopup(popupHtml(s), { maxWidth: 260 })
      .addTo(map);
  });
})();
</script>
</body>
</html>
`

const errorTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Upstream fetch failed</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2em; }
  pre { background: #f4f4f4; padding: 1em; overflow-x: auto; }
</style>
</head>
<body>
<h1>Upstream fetch failed</h1>
<p>HTTP status: <b>{{.StatusCode}}</b></p>
<p>Generated {{.GeneratedAt}}. The raw response begins:</p>
<pre>{{range .Lines}}{{.}}
{{end}}</pre>
</body>
</html>
`
