package webui

const defaultIndexHTML = `<!doctype html>
<html lang="tr">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Sunum2</title>
  <style>
    body { font-family: 'Outfit', 'Segoe UI', sans-serif; margin: 0; background: linear-gradient(135deg,#0f0520,#1a0d3a,#0d1f3c); color: #e8e0ff; }
    .wrap { max-width: 1100px; margin: 0 auto; padding: 20px; display: grid; grid-template-columns: 380px 1fr; gap: 16px; }
    .panel { background: rgba(255,255,255,.04); border: 1px solid rgba(255,255,255,.08); border-radius: 12px; padding: 16px; }
    #log { min-height: 320px; max-height: 60vh; overflow: auto; white-space: pre-wrap; border: 1px solid rgba(255,255,255,.12); border-radius: 8px; padding: 12px; background: rgba(0,0,0,.25); }
    .row { display: flex; gap: 8px; margin-top: 10px; }
    input { flex: 1; padding: 10px; border: 1px solid rgba(255,255,255,.2); border-radius: 8px; background: rgba(0,0,0,.3); color: inherit; }
    button { padding: 10px 16px; border: 0; border-radius: 8px; background: #7c3aed; color: #fff; cursor: pointer; }
    button:hover { background: #8b5cf6; }
    .choices { display: flex; flex-wrap: wrap; gap: 6px; margin-top: 8px; }
    .choices button { background: rgba(255,255,255,.08); font-size: .85em; }
    #slide { min-height: 420px; display: flex; flex-direction: column; justify-content: center; padding: 6%; border-radius: 12px; background: rgba(0,0,0,.25); }
    #slide h2 { color: #c4b5fd; }
    .nav { display: flex; justify-content: space-between; margin-top: 10px; }
  </style>
</head>
<body>
  <div class="wrap">
    <div class="panel">
      <h2>Sunum2</h2>
      <div id="log"></div>
      <div id="choices" class="choices"></div>
      <div class="row">
        <input id="msg" placeholder="Cevabınızı yazın..." />
        <button id="send">Gönder</button>
      </div>
    </div>
    <div class="panel">
      <div id="slide"><p>Sunumunuz burada görünecek.</p></div>
      <div class="nav">
        <button id="prev">◀ Önceki</button>
        <span id="pos"></span>
        <button id="next">Sonraki ▶</button>
      </div>
    </div>
  </div>
  <script>
    const log = document.getElementById('log');
    const msg = document.getElementById('msg');
    const choices = document.getElementById('choices');
    const slideEl = document.getElementById('slide');
    const pos = document.getElementById('pos');
    let presentation = null, current = 0;
    const token = new URLSearchParams(location.search).get('token') || '';
    const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    const ws = new WebSocket(proto + '//' + location.host + '/ws/chat' + (token ? '?token=' + token : ''));
    const append = (role, text) => { log.textContent += role + ': ' + text + '\n\n'; log.scrollTop = log.scrollHeight; };
    ws.onmessage = (ev) => {
      const data = JSON.parse(ev.data);
      if (data.error) append('⚠', data.error);
      if (data.text) append('Sunum2', data.text);
      choices.innerHTML = '';
      (data.choices || []).forEach(c => {
        const b = document.createElement('button');
        b.textContent = c;
        b.onclick = () => sendText(c);
        choices.appendChild(b);
      });
      if (data.presentation) { presentation = data.presentation; current = 0; renderSlide(); }
    };
    function sendText(text) {
      if (!text.trim()) return;
      append('Siz', text);
      ws.send(JSON.stringify({ text }));
      msg.value = '';
    }
    function renderSlide() {
      if (!presentation) return;
      const s = presentation.slides[current];
      slideEl.innerHTML = '<h2>' + s.title + '</h2><ul>' +
        (s.content || []).map(i => '<li>' + i + '</li>').join('') + '</ul>';
      pos.textContent = (current + 1) + ' / ' + presentation.slides.length;
    }
    document.getElementById('send').onclick = () => sendText(msg.value);
    msg.addEventListener('keydown', (e) => { if (e.key === 'Enter') sendText(msg.value); });
    document.getElementById('prev').onclick = () => { if (presentation && current > 0) { current--; renderSlide(); } };
    document.getElementById('next').onclick = () => { if (presentation && current < presentation.slides.length - 1) { current++; renderSlide(); } };
  </script>
</body>
</html>`
