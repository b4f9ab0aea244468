package remote

const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>particlenet</title>
<style>html,body{margin:0;height:100%;background:#0a0a0a;overflow:hidden}canvas{display:block}</style>
</head>
<body>
<canvas id="c"></canvas>
<script>
const c = document.getElementById("c");
const g = c.getContext("2d");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
const send = (m) => ws.readyState === 1 && ws.send(JSON.stringify(m));
const fit = () => {
  c.width = innerWidth;
  c.height = innerHeight;
  send({type: "resize", w: c.width, h: c.height});
};
ws.onopen = fit;
addEventListener("resize", fit);
c.addEventListener("mousemove", (e) => send({type: "pointer", x: e.clientX, y: e.clientY}));
c.addEventListener("mouseleave", () => send({type: "leave"}));
ws.onmessage = (e) => {
  const f = JSON.parse(e.data);
  g.fillStyle = "#0a0a0a";
  g.globalAlpha = 1;
  g.fillRect(0, 0, c.width, c.height);
  for (const p of f.circles || []) {
    g.fillStyle = p.color;
    g.beginPath();
    g.arc(p.x, p.y, p.r, 0, Math.PI * 2);
    g.fill();
  }
  for (const l of f.lines || []) {
    g.strokeStyle = l.color;
    g.globalAlpha = l.alpha;
    g.lineWidth = l.width;
    g.beginPath();
    g.moveTo(l.x0, l.y0);
    g.lineTo(l.x1, l.y1);
    g.stroke();
  }
  g.globalAlpha = 1;
};
</script>
</body>
</html>
`
